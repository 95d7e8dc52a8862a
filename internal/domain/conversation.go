package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ConversationType distinguishes direct dating/friends threads from activity
// group chats. Direct conversations are unique per (type, participant pair).
type ConversationType string

const (
	ConversationDating   ConversationType = "dating"
	ConversationFriends  ConversationType = "friends"
	ConversationActivity ConversationType = "activity"
)

// Valid reports whether t is a known conversation type.
func (t ConversationType) Valid() bool {
	return t == ConversationDating || t == ConversationFriends || t == ConversationActivity
}

// IsDirect reports whether conversations of this type are two-person threads
// subject to pair uniqueness.
func (t ConversationType) IsDirect() bool {
	return t == ConversationDating || t == ConversationFriends
}

type Conversation struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Type          ConversationType `json:"type" db:"type"`
	DirectPairKey *string          `json:"-" db:"direct_pair_key"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

// DirectPairKey builds the unique key that collapses a direct conversation's
// (type, unordered pair) into one row. Participants are canonically ordered.
func DirectPairKey(t ConversationType, a, b uuid.UUID) string {
	u1, u2 := CanonicalPair(a, b)
	return fmt.Sprintf("%s:%s:%s", t, u1, u2)
}

// Participant is one profile's membership in a conversation. Mute, hidden
// and left state are local to this participant's view and never affect the
// other side's membership.
type Participant struct {
	ConversationID uuid.UUID  `json:"conversation_id" db:"conversation_id"`
	ProfileID      uuid.UUID  `json:"profile_id" db:"profile_id"`
	JoinedAt       time.Time  `json:"joined_at" db:"joined_at"`
	LastReadAt     *time.Time `json:"last_read_at" db:"last_read_at"`
	Muted          bool       `json:"muted" db:"muted"`
	HiddenAt       *time.Time `json:"hidden_at" db:"hidden_at"`
	LeftAt         *time.Time `json:"left_at" db:"left_at"`
}

// Active reports whether the participant still receives messages and
// notifications for the conversation.
func (p *Participant) Active() bool {
	return p.LeftAt == nil
}

type Message struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	ConversationID uuid.UUID      `json:"conversation_id" db:"conversation_id"`
	SenderID       uuid.UUID      `json:"sender_id" db:"sender_id"`
	Content        string         `json:"content" db:"content"`
	ImageURLs      pq.StringArray `json:"image_urls" db:"image_urls"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	DeletedAt      *time.Time     `json:"-" db:"deleted_at"`
}
