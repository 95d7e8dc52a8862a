package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Match is the symmetric record formed when two profiles have liked each
// other. Rows are materialized only at the moment of mutuality and are keyed
// by the canonical pair (User1ID < User2ID by UUID string order), so (A,B)
// and (B,A) collapse into one row.
type Match struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	User1ID      uuid.UUID      `json:"user1_id" db:"user1_id"`
	User2ID      uuid.UUID      `json:"user2_id" db:"user2_id"`
	User1LikedAt time.Time      `json:"user1_liked_at" db:"user1_liked_at"`
	User2LikedAt time.Time      `json:"user2_liked_at" db:"user2_liked_at"`
	MatchedAt    time.Time      `json:"matched_at" db:"matched_at"`
	IsMatch      bool           `json:"is_match" db:"is_match"`
	Openers      pq.StringArray `json:"openers" db:"openers"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

func (m *Match) HasUser(userID uuid.UUID) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID uuid.UUID) (uuid.UUID, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return uuid.Nil, false
}

// CanonicalPair orders two profile ids by their UUID string form, a stable
// total order used everywhere a symmetric pair keys a row.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) > 0 {
		return b, a
	}
	return a, b
}
