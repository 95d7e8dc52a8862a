package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCanonicalPairIsSymmetric(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	u1, u2 := CanonicalPair(a, b)
	v1, v2 := CanonicalPair(b, a)
	if u1 != v1 || u2 != v2 {
		t.Fatalf("CanonicalPair depends on argument order: (%s,%s) vs (%s,%s)", u1, u2, v1, v2)
	}
	if u1.String() > u2.String() {
		t.Errorf("pair not in ascending order: %s > %s", u1, u2)
	}
}

func TestDirectPairKeySymmetricPerType(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	if DirectPairKey(ConversationDating, a, b) != DirectPairKey(ConversationDating, b, a) {
		t.Errorf("same pair produced different keys")
	}
	if DirectPairKey(ConversationDating, a, b) == DirectPairKey(ConversationFriends, a, b) {
		t.Errorf("different types must produce different keys")
	}
}

func TestDiscoveryModeAdmits(t *testing.T) {
	cases := []struct {
		mode DiscoveryMode
		lf   LookingFor
		want bool
	}{
		{ModeDating, LookingForDating, true},
		{ModeDating, LookingForBoth, true},
		{ModeDating, LookingForFriends, false},
		{ModeFriends, LookingForFriends, true},
		{ModeFriends, LookingForBoth, true},
		{ModeFriends, LookingForDating, false},
		{ModeAny, LookingForDating, true},
		{ModeAny, LookingForFriends, true},
		{DiscoveryMode("bogus"), LookingForBoth, false},
	}
	for _, c := range cases {
		if got := c.mode.Admits(c.lf); got != c.want {
			t.Errorf("%s.Admits(%s) = %v, want %v", c.mode, c.lf, got, c.want)
		}
	}
}

func TestSwipeDirection(t *testing.T) {
	if !SwipeRight.IsLike() || !SwipeUp.IsLike() {
		t.Errorf("right and up both express interest")
	}
	if SwipeLeft.IsLike() {
		t.Errorf("left is a pass, not a like")
	}
	if !SwipeLeft.Valid() || SwipeDirection("diagonal").Valid() {
		t.Errorf("direction validity wrong")
	}
}

func TestConversationTypeDirectness(t *testing.T) {
	if !ConversationDating.IsDirect() || !ConversationFriends.IsDirect() {
		t.Errorf("dating and friends threads are direct")
	}
	if ConversationActivity.IsDirect() {
		t.Errorf("activity threads are group chats")
	}
	if ConversationType("bogus").Valid() {
		t.Errorf("unknown type reported valid")
	}
}

func TestParticipantActive(t *testing.T) {
	now := time.Now()
	p := &Participant{}
	if !p.Active() {
		t.Errorf("fresh participant should be active")
	}
	p.Muted = true
	if !p.Active() {
		t.Errorf("mute must not deactivate membership")
	}
	p.LeftAt = &now
	if p.Active() {
		t.Errorf("left participant should be inactive")
	}
}

func TestProfileAge(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	p := &Profile{}
	if p.Age(now) != nil {
		t.Errorf("age without birthdate should be nil")
	}

	b := time.Date(1996, 8, 27, 0, 0, 0, 0, time.UTC) // birthday tomorrow
	p.Birthdate = &b
	if got := p.Age(now); got == nil || *got != 29 {
		t.Errorf("day before 30th birthday: age = %v, want 29", got)
	}

	b = time.Date(1996, 8, 26, 0, 0, 0, 0, time.UTC) // birthday today
	if got := p.Age(now); got == nil || *got != 30 {
		t.Errorf("on 30th birthday: age = %v, want 30", got)
	}
}

func TestMatchOtherUserID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m := &Match{User1ID: a, User2ID: b}

	if other, ok := m.OtherUserID(a); !ok || other != b {
		t.Errorf("OtherUserID(a) = %v, %v", other, ok)
	}
	if other, ok := m.OtherUserID(b); !ok || other != a {
		t.Errorf("OtherUserID(b) = %v, %v", other, ok)
	}
	if _, ok := m.OtherUserID(uuid.New()); ok {
		t.Errorf("stranger should not resolve to a side of the match")
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{36.5, -121.9, true},
		{90, 180, true},
		{-90, -180, true},
		{90.01, 0, false},
		{0, 180.01, false},
		{-91, 0, false},
	}
	for _, c := range cases {
		if got := ValidCoordinates(c.lat, c.lon); got != c.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", c.lat, c.lon, got, c.want)
		}
	}
}
