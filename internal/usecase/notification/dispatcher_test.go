package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }
func (f *fakeProfileRepo) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	return nil
}
func (f *fakeProfileRepo) SetOnboardingCompleted(ctx context.Context, id uuid.UUID) error {
	return nil
}
func (f *fakeProfileRepo) SetDeviceToken(ctx context.Context, id uuid.UUID, token *string) error {
	return nil
}
func (f *fakeProfileRepo) SetNotificationPrefs(ctx context.Context, id uuid.UUID, a, b, c, d bool) error {
	return nil
}
func (f *fakeProfileRepo) ListDiscoverable(ctx context.Context, requesterID uuid.UUID, limit int) ([]*domain.Profile, error) {
	return nil, nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, deviceToken string, n domain.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, deviceToken)
	return nil
}

func newService(profiles ...*domain.Profile) (*Service, *fakeSender) {
	repo := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{}}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	sender := &fakeSender{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, sender, logger), sender
}

func tokenPtr(s string) *string { return &s }

func testProfile() *domain.Profile {
	return &domain.Profile{
		ID:                   uuid.New(),
		DisplayName:          "camper",
		DeviceToken:          tokenPtr("device-token-1"),
		NotifyNewMessages:    true,
		NotifyNewMatches:     true,
		NotifyEventUpdates:   true,
		NotifyFriendRequests: true,
	}
}

func TestNotifyDeliversToRegisteredDevice(t *testing.T) {
	p := testProfile()
	svc, sender := newService(p)

	svc.Notify(context.Background(), p.ID, domain.Notification{
		Title:    "It's a match!",
		Category: domain.CategoryNewMatches,
	})
	if len(sender.sent) != 1 || sender.sent[0] != "device-token-1" {
		t.Fatalf("expected delivery to the registered token, got %v", sender.sent)
	}
}

func TestNotifyHonorsCategoryPreference(t *testing.T) {
	p := testProfile()
	p.NotifyNewMatches = false
	svc, sender := newService(p)

	svc.Notify(context.Background(), p.ID, domain.Notification{Category: domain.CategoryNewMatches})
	if len(sender.sent) != 0 {
		t.Fatalf("disabled category must not deliver, got %v", sender.sent)
	}

	// Other categories stay unaffected by the disabled one.
	svc.Notify(context.Background(), p.ID, domain.Notification{Category: domain.CategoryNewMessages})
	if len(sender.sent) != 1 {
		t.Fatalf("enabled category should still deliver, got %v", sender.sent)
	}
}

func TestNotifySkipsMissingToken(t *testing.T) {
	p := testProfile()
	p.DeviceToken = nil
	svc, sender := newService(p)

	svc.Notify(context.Background(), p.ID, domain.Notification{Category: domain.CategoryNewMessages})
	if len(sender.sent) != 0 {
		t.Fatalf("no token registered, nothing should be sent")
	}
}

func TestNotifySwallowsFailures(t *testing.T) {
	p := testProfile()
	svc, sender := newService(p)
	sender.err = errors.New("fcm unreachable")

	// Must not panic or propagate; the triggering write already committed.
	svc.Notify(context.Background(), p.ID, domain.Notification{Category: domain.CategoryNewMessages})

	svc.Notify(context.Background(), uuid.New(), domain.Notification{Category: domain.CategoryNewMessages})
}

func TestNotifyUnknownCategoryDropped(t *testing.T) {
	p := testProfile()
	svc, sender := newService(p)

	svc.Notify(context.Background(), p.ID, domain.Notification{Category: "mystery"})
	if len(sender.sent) != 0 {
		t.Fatalf("unknown category must not deliver")
	}
}
