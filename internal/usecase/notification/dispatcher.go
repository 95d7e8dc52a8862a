// Package notification dispatches push payloads to user devices. Dispatch is
// best-effort: every failure is logged and swallowed so a swipe, match or
// message write is never rolled back by a push problem.
package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

// Dispatcher is the interface the usecases call after their writes commit.
type Dispatcher interface {
	Notify(ctx context.Context, targetUserID uuid.UUID, n domain.Notification)
}

// Sender delivers one payload to one device token. Implemented by the FCM
// client in infrastructure/push.
type Sender interface {
	Send(ctx context.Context, deviceToken string, n domain.Notification) error
}

type Service struct {
	profiles repository.ProfileRepository
	sender   Sender
	logger   *slog.Logger
}

func NewService(profiles repository.ProfileRepository, sender Sender, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		sender:   sender,
		logger:   logger,
	}
}

// Notify delivers n to the target user's registered device, honoring the
// user's per-category preference. It never returns an error.
func (s *Service) Notify(ctx context.Context, targetUserID uuid.UUID, n domain.Notification) {
	profile, err := s.profiles.GetByID(ctx, targetUserID)
	if err != nil {
		s.logger.Warn("notification target lookup failed",
			"user_id", targetUserID, "category", n.Category, "error", err)
		return
	}

	if !categoryEnabled(profile, n.Category) {
		return
	}
	if profile.DeviceToken == nil || *profile.DeviceToken == "" {
		return
	}

	if err := s.sender.Send(ctx, *profile.DeviceToken, n); err != nil {
		s.logger.Warn("push delivery failed",
			"user_id", targetUserID, "category", n.Category, "error", err)
	}
}

func categoryEnabled(p *domain.Profile, c domain.NotificationCategory) bool {
	switch c {
	case domain.CategoryNewMessages:
		return p.NotifyNewMessages
	case domain.CategoryNewMatches:
		return p.NotifyNewMatches
	case domain.CategoryEventUpdates:
		return p.NotifyEventUpdates
	case domain.CategoryFriendRequests:
		return p.NotifyFriendRequests
	}
	return false
}
