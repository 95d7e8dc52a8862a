package domain

// NotificationCategory selects which per-user preference gates delivery.
type NotificationCategory string

const (
	CategoryNewMessages    NotificationCategory = "newMessages"
	CategoryNewMatches     NotificationCategory = "newMatches"
	CategoryEventUpdates   NotificationCategory = "eventUpdates"
	CategoryFriendRequests NotificationCategory = "friendRequests"
)

// Notification is a push payload destined for one user's device. Delivery is
// best-effort; a failed send never fails the write that produced it.
type Notification struct {
	Title    string               `json:"title"`
	Body     string               `json:"body"`
	Category NotificationCategory `json:"category"`
	Payload  map[string]string    `json:"payload,omitempty"`
}
