package chat

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type fakeConvRepo struct {
	byKey        map[string]*domain.Conversation
	byID         map[uuid.UUID]*domain.Conversation
	participants map[uuid.UUID]map[uuid.UUID]*domain.Participant
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		byKey:        map[string]*domain.Conversation{},
		byID:         map[uuid.UUID]*domain.Conversation{},
		participants: map[uuid.UUID]map[uuid.UUID]*domain.Participant{},
	}
}

func (f *fakeConvRepo) addParticipant(convID, profileID uuid.UUID) {
	if f.participants[convID] == nil {
		f.participants[convID] = map[uuid.UUID]*domain.Participant{}
	}
	f.participants[convID][profileID] = &domain.Participant{
		ConversationID: convID,
		ProfileID:      profileID,
		JoinedAt:       time.Now(),
	}
}

func (f *fakeConvRepo) GetOrCreateDirect(ctx context.Context, t domain.ConversationType, userA, userB uuid.UUID) (*domain.Conversation, bool, error) {
	key := domain.DirectPairKey(t, userA, userB)
	if conv, ok := f.byKey[key]; ok {
		return conv, false, nil
	}
	conv := &domain.Conversation{
		ID:            uuid.New(),
		Type:          t,
		DirectPairKey: &key,
		CreatedAt:     time.Now(),
	}
	f.byKey[key] = conv
	f.byID[conv.ID] = conv
	f.addParticipant(conv.ID, userA)
	f.addParticipant(conv.ID, userB)
	return conv, true, nil
}

func (f *fakeConvRepo) CreateActivity(ctx context.Context, participantIDs []uuid.UUID) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        uuid.New(),
		Type:      domain.ConversationActivity,
		CreatedAt: time.Now(),
	}
	f.byID[conv.ID] = conv
	for _, id := range participantIDs {
		f.addParticipant(conv.ID, id)
	}
	return conv, nil
}

func (f *fakeConvRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if conv, ok := f.byID[id]; ok {
		return conv, nil
	}
	return nil, domain.ErrConversationNotFound
}

func (f *fakeConvRepo) ListForUser(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*domain.Conversation, error) {
	var out []*domain.Conversation
	for convID, members := range f.participants {
		p, ok := members[profileID]
		if !ok || p.HiddenAt != nil || p.LeftAt != nil {
			continue
		}
		out = append(out, f.byID[convID])
	}
	return out, nil
}

func (f *fakeConvRepo) GetParticipant(ctx context.Context, conversationID, profileID uuid.UUID) (*domain.Participant, error) {
	if p, ok := f.participants[conversationID][profileID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotParticipant
}

func (f *fakeConvRepo) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*domain.Participant, error) {
	var out []*domain.Participant
	for _, p := range f.participants[conversationID] {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeConvRepo) SetLastRead(ctx context.Context, conversationID, profileID uuid.UUID) error {
	p, err := f.GetParticipant(ctx, conversationID, profileID)
	if err != nil {
		return err
	}
	now := time.Now()
	p.LastReadAt = &now
	return nil
}

func (f *fakeConvRepo) SetMuted(ctx context.Context, conversationID, profileID uuid.UUID, muted bool) error {
	p, err := f.GetParticipant(ctx, conversationID, profileID)
	if err != nil {
		return err
	}
	p.Muted = muted
	return nil
}

func (f *fakeConvRepo) SetHidden(ctx context.Context, conversationID, profileID uuid.UUID, hidden bool) error {
	p, err := f.GetParticipant(ctx, conversationID, profileID)
	if err != nil {
		return err
	}
	if hidden {
		now := time.Now()
		p.HiddenAt = &now
	} else {
		p.HiddenAt = nil
	}
	return nil
}

func (f *fakeConvRepo) SetLeft(ctx context.Context, conversationID, profileID uuid.UUID) error {
	p, err := f.GetParticipant(ctx, conversationID, profileID)
	if err != nil {
		return err
	}
	now := time.Now()
	p.LeftAt = &now
	return nil
}

type fakeMessageRepo struct {
	messages map[uuid.UUID]*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[uuid.UUID]*domain.Message{}}
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *domain.Message) error {
	m.CreatedAt = time.Now()
	f.messages[m.ID] = m
	return nil
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	m, ok := f.messages[id]
	if !ok || m.DeletedAt != nil {
		return nil, domain.ErrMessageNotFound
	}
	return m, nil
}

func (f *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.DeletedAt == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	m, ok := f.messages[id]
	if !ok || m.DeletedAt != nil {
		return domain.ErrMessageNotFound
	}
	now := time.Now()
	m.DeletedAt = &now
	return nil
}

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

type recordingNotifier struct {
	sent []uuid.UUID
}

func (r *recordingNotifier) Notify(ctx context.Context, target uuid.UUID, n domain.Notification) {
	r.sent = append(r.sent, target)
}

func newFixture(userIDs ...uuid.UUID) (*UseCase, *fakeConvRepo, *fakeMessageRepo, *recordingNotifier) {
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{}}
	for _, id := range userIDs {
		profiles.profiles[id] = &domain.Profile{ID: id, DisplayName: "user-" + id.String()[:8]}
	}
	convs := newFakeConvRepo()
	messages := newFakeMessageRepo()
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUseCase(convs, messages, profiles, notifier, logger), convs, messages, notifier
}

func TestGetOrCreateConversationRejectsNonDirectType(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, _, _, _ := newFixture(a, b)

	for _, typ := range []domain.ConversationType{domain.ConversationActivity, "bogus"} {
		_, err := uc.GetOrCreateConversation(context.Background(), typ, a, b)
		if err != domain.ErrInvalidConversationType {
			t.Errorf("type %q: expected ErrInvalidConversationType, got %v", typ, err)
		}
	}
}

func TestGetOrCreateConversationRejectsSelf(t *testing.T) {
	a := uuid.New()
	uc, _, _, _ := newFixture(a)

	_, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, a)
	if err != domain.ErrSameParticipant {
		t.Fatalf("expected ErrSameParticipant, got %v", err)
	}
}

func TestGetOrCreateConversationRejectsUnknownOther(t *testing.T) {
	a := uuid.New()
	uc, _, _, _ := newFixture(a)

	_, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, uuid.New())
	if err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGetOrCreateConversationIsIdempotentAndSymmetric(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, convs, _, _ := newFixture(a, b)

	first, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Reversed participant order resolves to the same thread.
	second, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("pair resolved to two conversations: %s and %s", first.ID, second.ID)
	}
	if len(convs.byID) != 1 {
		t.Errorf("expected one stored conversation, got %d", len(convs.byID))
	}
}

func TestGetOrCreateConversationSeparatesTypes(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, _, _, _ := newFixture(a, b)

	dating, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	friends, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationFriends, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dating.ID == friends.ID {
		t.Errorf("dating and friends threads for the same pair must be distinct")
	}
}

func TestGetOrCreateConversationUnhidesExistingThread(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, convs, _, _ := newFixture(a, b)

	conv, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Hide(context.Background(), conv.ID, a); err != nil {
		t.Fatalf("hide failed: %v", err)
	}

	if _, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := convs.GetParticipant(context.Background(), conv.ID, a)
	if p.HiddenAt != nil {
		t.Errorf("re-initiating a thread should unhide it for the requester")
	}
}

func TestCreateActivityConversationDedupsParticipants(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	uc, convs, _, _ := newFixture(a, b, c)

	conv, err := uc.CreateActivityConversation(context.Background(), a, []uuid.UUID{b, c, b, a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(convs.participants[conv.ID]); got != 3 {
		t.Errorf("expected 3 unique participants, got %d", got)
	}

	if _, err := uc.CreateActivityConversation(context.Background(), a, nil); err != domain.ErrSameParticipant {
		t.Errorf("creator-only activity should be rejected, got %v", err)
	}
}

func TestSendMessageRequiresActiveParticipant(t *testing.T) {
	a, b, outsider := uuid.New(), uuid.New(), uuid.New()
	uc, _, _, _ := newFixture(a, b, outsider)

	conv, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = uc.SendMessage(context.Background(), conv.ID, outsider, SendMessageRequest{Content: "hi"})
	if err != domain.ErrNotParticipant {
		t.Fatalf("outsider send: expected ErrNotParticipant, got %v", err)
	}

	if err := uc.Leave(context.Background(), conv.ID, b); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	_, err = uc.SendMessage(context.Background(), conv.ID, b, SendMessageRequest{Content: "hi"})
	if err != domain.ErrNotParticipant {
		t.Fatalf("left participant send: expected ErrNotParticipant, got %v", err)
	}
}

func TestSendMessageNotifiesOtherParticipants(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, _, _, notifier := newFixture(a, b)

	conv, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.SendMessage(context.Background(), conv.ID, a, SendMessageRequest{Content: "see you at the trailhead"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != b {
		t.Fatalf("expected one notification to the recipient, got %v", notifier.sent)
	}
}

func TestSendMessageSkipsMutedAndLeftParticipants(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	uc, _, _, notifier := newFixture(a, b, c)

	conv, err := uc.CreateActivityConversation(context.Background(), a, []uuid.UUID{b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.SetMuted(context.Background(), conv.ID, b, true); err != nil {
		t.Fatalf("mute failed: %v", err)
	}
	if err := uc.Leave(context.Background(), conv.ID, c); err != nil {
		t.Fatalf("leave failed: %v", err)
	}

	if _, err := uc.SendMessage(context.Background(), conv.ID, a, SendMessageRequest{Content: "campfire at 8"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("muted and left participants must not be notified, got %v", notifier.sent)
	}

	// Unmuting restores delivery for b only.
	if err := uc.SetMuted(context.Background(), conv.ID, b, false); err != nil {
		t.Fatalf("unmute failed: %v", err)
	}
	if _, err := uc.SendMessage(context.Background(), conv.ID, a, SendMessageRequest{Content: "bring marshmallows"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != b {
		t.Fatalf("expected one notification to the unmuted participant, got %v", notifier.sent)
	}
}

func TestSendMessageRejectsEmptyAndOversized(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, _, _, _ := newFixture(a, b)

	conv, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.SendMessage(context.Background(), conv.ID, a, SendMessageRequest{Content: ""}); err == nil {
		t.Errorf("empty message should be rejected")
	}
	long := make([]byte, maxMessageLength+1)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := uc.SendMessage(context.Background(), conv.ID, a, SendMessageRequest{Content: string(long)}); err == nil {
		t.Errorf("oversized message should be rejected")
	}
}

func TestDeleteMessageAuthorOnly(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, _, messages, _ := newFixture(a, b)

	conv, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg, err := uc.SendMessage(context.Background(), conv.ID, a, SendMessageRequest{Content: "oops"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := uc.DeleteMessage(context.Background(), msg.ID, b); err != domain.ErrNotOwner {
		t.Fatalf("non-author delete: expected ErrNotOwner, got %v", err)
	}
	if err := uc.DeleteMessage(context.Background(), msg.ID, a); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if messages.messages[msg.ID].DeletedAt == nil {
		t.Errorf("message should be soft-deleted")
	}
	if err := uc.DeleteMessage(context.Background(), msg.ID, a); err != domain.ErrMessageNotFound {
		t.Errorf("deleting twice: expected ErrMessageNotFound, got %v", err)
	}
}

func TestListMessagesParticipantsOnly(t *testing.T) {
	a, b, outsider := uuid.New(), uuid.New(), uuid.New()
	uc, _, _, _ := newFixture(a, b, outsider)

	conv, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.SendMessage(context.Background(), conv.ID, a, SendMessageRequest{Content: "hello"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if _, err := uc.ListMessages(context.Background(), conv.ID, outsider, 50, 0); err != domain.ErrNotParticipant {
		t.Fatalf("outsider list: expected ErrNotParticipant, got %v", err)
	}
	got, err := uc.ListMessages(context.Background(), conv.ID, b, 50, 0)
	if err != nil {
		t.Fatalf("participant list failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 message, got %d", len(got))
	}
}

func TestHideIsLocalToParticipant(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	uc, _, _, _ := newFixture(a, b)

	conv, err := uc.GetOrCreateConversation(context.Background(), domain.ConversationDating, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Hide(context.Background(), conv.ID, a); err != nil {
		t.Fatalf("hide failed: %v", err)
	}

	aList, err := uc.ListConversations(context.Background(), a, 50, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	bList, err := uc.ListConversations(context.Background(), b, 50, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(aList) != 0 {
		t.Errorf("hidden conversation still listed for hider")
	}
	if len(bList) != 1 {
		t.Errorf("hide leaked to the other participant")
	}
}
