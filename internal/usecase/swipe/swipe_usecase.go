// Package swipe implements the swipe-to-match state machine. Per pair the
// states are no interaction, one-sided like, then mutual; the transition to
// mutual happens exactly once and is the only point match notifications fire.
package swipe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/gemini"
	"github.com/vanmates/vanmates-backend/internal/repository"
	"github.com/vanmates/vanmates-backend/internal/usecase/notification"
)

type UseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	notifier    notification.Dispatcher
	gemini      *gemini.Client
	logger      *slog.Logger
	now         func() time.Time
}

func NewUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	notifier notification.Dispatcher,
	geminiClient *gemini.Client,
	logger *slog.Logger,
) *UseCase {
	return &UseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		gemini:      geminiClient,
		logger:      logger,
		now:         time.Now,
	}
}

// RecordSwipeRequest is a single swipe action.
type RecordSwipeRequest struct {
	SwipedID  uuid.UUID             `json:"swiped_id" binding:"required"`
	Direction domain.SwipeDirection `json:"direction" binding:"required,oneof=left right up"`
}

// SwipeResult reports what the swipe did.
type SwipeResult struct {
	Created     bool          `json:"created"`
	MatchFormed bool          `json:"match_formed"`
	Match       *domain.Match `json:"match,omitempty"`
}

// RecordSwipe persists the swipe and, on a mutual like, promotes the pair to
// a match. Duplicate swipes on a pair return domain.ErrAlreadySwiped without
// touching the stored direction.
func (uc *UseCase) RecordSwipe(ctx context.Context, swiperID uuid.UUID, req RecordSwipeRequest) (*SwipeResult, error) {
	if !req.Direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}
	if swiperID == req.SwipedID {
		return nil, domain.ErrCannotSwipeSelf
	}
	if _, err := uc.profileRepo.GetByID(ctx, req.SwipedID); err != nil {
		return nil, err
	}

	swipe := &domain.Swipe{
		ID:        uuid.New(),
		SwiperID:  swiperID,
		SwipedID:  req.SwipedID,
		Direction: req.Direction,
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		return nil, err
	}

	result := &SwipeResult{Created: true}
	if !req.Direction.IsLike() {
		return result, nil
	}

	reverse, err := uc.swipeRepo.GetReverseLike(ctx, swiperID, req.SwipedID)
	if err != nil {
		if err == domain.ErrMatchNotFound {
			return result, nil
		}
		return nil, fmt.Errorf("check reverse like: %w", err)
	}

	match := &domain.Match{
		ID:           uuid.New(),
		User1ID:      swiperID,
		User2ID:      req.SwipedID,
		User1LikedAt: swipe.CreatedAt,
		User2LikedAt: reverse.CreatedAt,
		MatchedAt:    uc.now(),
		IsMatch:      true,
	}
	created, err := uc.matchRepo.CreateIfAbsent(ctx, match)
	if err != nil {
		// The swipe itself persisted; surface it rather than the lost promotion.
		uc.logger.Error("match promotion failed", "swiper", swiperID, "swiped", req.SwipedID, "error", err)
		return result, nil
	}
	if !created {
		return result, nil
	}

	result.MatchFormed = true
	result.Match = match

	uc.notifyMatch(ctx, match)
	go uc.enrichMatchOpeners(context.WithoutCancel(ctx), match)

	return result, nil
}

// notifyMatch emits one match-formed notification per participant. It only
// runs on the transition into the mutual state, never on replays.
func (uc *UseCase) notifyMatch(ctx context.Context, match *domain.Match) {
	payload := map[string]string{"match_id": match.ID.String()}
	for _, pair := range [][2]uuid.UUID{
		{match.User1ID, match.User2ID},
		{match.User2ID, match.User1ID},
	} {
		target, other := pair[0], pair[1]
		body := "You have a new travel match. Say hi!"
		if profile, err := uc.profileRepo.GetByID(ctx, other); err == nil {
			body = fmt.Sprintf("You matched with %s. Say hi!", profile.DisplayName)
		}
		uc.notifier.Notify(ctx, target, domain.Notification{
			Title:    "It's a match!",
			Body:     body,
			Category: domain.CategoryNewMatches,
			Payload:  payload,
		})
	}
}

// enrichMatchOpeners asks Gemini for opener suggestions and stores them on
// the match row. Best-effort; a nil client or any failure leaves the match
// untouched.
func (uc *UseCase) enrichMatchOpeners(ctx context.Context, match *domain.Match) {
	if uc.gemini == nil {
		return
	}

	p1, err := uc.profileRepo.GetByID(ctx, match.User1ID)
	if err != nil {
		return
	}
	p2, err := uc.profileRepo.GetByID(ctx, match.User2ID)
	if err != nil {
		return
	}

	bio := func(p *domain.Profile) string {
		if p.Bio != nil {
			return *p.Bio
		}
		return p.DisplayName
	}

	openers, err := uc.gemini.GenerateOpeners(ctx, bio(p1), bio(p2))
	if err != nil {
		uc.logger.Warn("opener generation failed", "match_id", match.ID, "error", err)
		return
	}
	if err := uc.matchRepo.SetOpeners(ctx, match.ID, openers); err != nil {
		uc.logger.Warn("storing openers failed", "match_id", match.ID, "error", err)
	}
}

// LikeReceived is one unanswered incoming like.
type LikeReceived struct {
	SwipeID     uuid.UUID `json:"swipe_id"`
	ProfileID   uuid.UUID `json:"profile_id"`
	DisplayName string    `json:"display_name"`
	Bio         *string   `json:"bio,omitempty"`
	Age         *int      `json:"age,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListLikesReceived returns likes toward userID that userID has not answered.
func (uc *UseCase) ListLikesReceived(ctx context.Context, userID uuid.UUID, limit, offset int) ([]LikeReceived, error) {
	if limit <= 0 {
		limit = 20
	}
	likes, err := uc.swipeRepo.ListLikesReceived(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list likes received: %w", err)
	}

	now := uc.now()
	results := make([]LikeReceived, 0, len(likes))
	for _, like := range likes {
		profile, err := uc.profileRepo.GetByID(ctx, like.SwiperID)
		if err != nil {
			continue
		}
		results = append(results, LikeReceived{
			SwipeID:     like.ID,
			ProfileID:   profile.ID,
			DisplayName: profile.DisplayName,
			Bio:         profile.Bio,
			Age:         profile.Age(now),
			CreatedAt:   like.CreatedAt,
		})
	}
	return results, nil
}

// ListMatches returns the user's confirmed matches, newest first.
func (uc *UseCase) ListMatches(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Match, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.matchRepo.ListForUser(ctx, userID, limit, offset)
}
