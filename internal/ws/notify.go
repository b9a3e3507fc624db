package ws

import (
	"encoding/json"
	"time"

	"levelminds/internal/domain/notification"
)

type NotificationEvent struct {
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	CreatedAt string `json:"created_at"`
}

// PushNotification forwards a stored notification to the recipient's open connections.
func (h *Hub) PushNotification(n notification.Notification) {
	if h == nil {
		return
	}
	b, err := json.Marshal(NotificationEvent{
		Type:      "notification",
		ID:        n.ID,
		Message:   n.Message,
		Link:      n.Link,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.SendTo(n.UserID, b)
}
