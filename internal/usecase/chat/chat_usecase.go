// Package chat resolves conversations and handles messaging. Direct
// conversations are unique per (type, participant pair); resolving the same
// pair twice, in either argument order or concurrently, yields one id.
package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
	"github.com/vanmates/vanmates-backend/internal/usecase/notification"
)

const maxMessageLength = 4000

type UseCase struct {
	convRepo    repository.ConversationRepository
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
	notifier    notification.Dispatcher
	logger      *slog.Logger
}

func NewUseCase(
	convRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	notifier notification.Dispatcher,
	logger *slog.Logger,
) *UseCase {
	return &UseCase{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetOrCreateConversation resolves the direct conversation between two users
// for the given type, creating it when absent. Participants hidden state is
// cleared for the requester so a re-initiated thread reappears in their list.
func (uc *UseCase) GetOrCreateConversation(ctx context.Context, t domain.ConversationType, requesterID, otherID uuid.UUID) (*domain.Conversation, error) {
	if !t.Valid() || !t.IsDirect() {
		return nil, domain.ErrInvalidConversationType
	}
	if requesterID == otherID {
		return nil, domain.ErrSameParticipant
	}
	if _, err := uc.profileRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	conv, created, err := uc.convRepo.GetOrCreateDirect(ctx, t, requesterID, otherID)
	if err != nil {
		return nil, fmt.Errorf("resolve conversation: %w", err)
	}

	if !created {
		if err := uc.convRepo.SetHidden(ctx, conv.ID, requesterID, false); err != nil {
			uc.logger.Warn("unhide conversation failed", "conversation_id", conv.ID, "error", err)
		}
	}
	return conv, nil
}

// CreateActivityConversation creates a group thread for an event/activity.
func (uc *UseCase) CreateActivityConversation(ctx context.Context, creatorID uuid.UUID, participantIDs []uuid.UUID) (*domain.Conversation, error) {
	ids := []uuid.UUID{creatorID}
	seen := map[uuid.UUID]struct{}{creatorID: {}}
	for _, id := range participantIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		if _, err := uc.profileRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) < 2 {
		return nil, domain.ErrSameParticipant
	}
	return uc.convRepo.CreateActivity(ctx, ids)
}

// SendMessageRequest is the body of a message send.
type SendMessageRequest struct {
	Content   string   `json:"content" binding:"required,max=4000"`
	ImageURLs []string `json:"image_urls" binding:"omitempty,max=6,dive,url"`
}

// SendMessage persists a message and then notifies the other active,
// unmuted participants. Notification failures never fail the send.
func (uc *UseCase) SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, req SendMessageRequest) (*domain.Message, error) {
	if req.Content == "" || len(req.Content) > maxMessageLength {
		return nil, fmt.Errorf("message content must be 1-%d characters", maxMessageLength)
	}

	sender, err := uc.activeParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        req.Content,
		ImageURLs:      req.ImageURLs,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	uc.notifyParticipants(ctx, message, sender)
	return message, nil
}

func (uc *UseCase) notifyParticipants(ctx context.Context, message *domain.Message, sender *domain.Participant) {
	participants, err := uc.convRepo.ListParticipants(ctx, message.ConversationID)
	if err != nil {
		uc.logger.Warn("listing participants for notification failed",
			"conversation_id", message.ConversationID, "error", err)
		return
	}

	senderName := "Someone"
	if profile, err := uc.profileRepo.GetByID(ctx, sender.ProfileID); err == nil {
		senderName = profile.DisplayName
	}

	preview := message.Content
	if len(preview) > 120 {
		preview = preview[:120]
	}

	for _, p := range participants {
		if p.ProfileID == message.SenderID {
			continue
		}
		// A mute silences this conversation only; other categories and other
		// conversations for the same user are unaffected.
		if !p.Active() || p.Muted {
			continue
		}
		uc.notifier.Notify(ctx, p.ProfileID, domain.Notification{
			Title:    senderName,
			Body:     preview,
			Category: domain.CategoryNewMessages,
			Payload: map[string]string{
				"conversation_id": message.ConversationID.String(),
				"message_id":      message.ID.String(),
			},
		})
	}
}

// ListMessages returns non-deleted messages, newest first. Only participants
// may read.
func (uc *UseCase) ListMessages(ctx context.Context, conversationID, requesterID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	if _, err := uc.convRepo.GetParticipant(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.messageRepo.ListByConversation(ctx, conversationID, limit, offset)
}

// DeleteMessage soft-deletes a message. Author only.
func (uc *UseCase) DeleteMessage(ctx context.Context, messageID, requesterID uuid.UUID) error {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != requesterID {
		return domain.ErrNotOwner
	}
	return uc.messageRepo.SoftDelete(ctx, messageID)
}

// ListConversations returns the requester's visible conversations.
func (uc *UseCase) ListConversations(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*domain.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.convRepo.ListForUser(ctx, requesterID, limit, offset)
}

// MarkRead stamps the requester's last-read time.
func (uc *UseCase) MarkRead(ctx context.Context, conversationID, requesterID uuid.UUID) error {
	return uc.convRepo.SetLastRead(ctx, conversationID, requesterID)
}

// SetMuted toggles message notifications for this conversation for the
// requester only.
func (uc *UseCase) SetMuted(ctx context.Context, conversationID, requesterID uuid.UUID, muted bool) error {
	return uc.convRepo.SetMuted(ctx, conversationID, requesterID, muted)
}

// Hide removes the conversation from the requester's list without affecting
// the other participant.
func (uc *UseCase) Hide(ctx context.Context, conversationID, requesterID uuid.UUID) error {
	return uc.convRepo.SetHidden(ctx, conversationID, requesterID, true)
}

// Leave permanently removes the requester from the conversation's delivery.
func (uc *UseCase) Leave(ctx context.Context, conversationID, requesterID uuid.UUID) error {
	return uc.convRepo.SetLeft(ctx, conversationID, requesterID)
}

func (uc *UseCase) activeParticipant(ctx context.Context, conversationID, profileID uuid.UUID) (*domain.Participant, error) {
	p, err := uc.convRepo.GetParticipant(ctx, conversationID, profileID)
	if err != nil {
		return nil, err
	}
	if !p.Active() {
		return nil, domain.ErrNotParticipant
	}
	return p, nil
}
