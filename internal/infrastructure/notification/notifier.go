package notification

import (
	"encoding/json"
	"time"

	ws "ishara/internal/infrastructure/websocket"
	"ishara/pkg/logger"
)

// payload is the notification frame pushed to a user's websocket connection,
// replacing the app's local notification dispatch.
type payload struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	RoomID    string    `json:"room_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type WebSocketNotifier struct {
	wsManager *ws.Manager
}

func NewWebSocketNotifier(wsManager *ws.Manager) *WebSocketNotifier {
	return &WebSocketNotifier{
		wsManager: wsManager,
	}
}

// Notify pushes a notification frame to the user. Delivery is best-effort;
// an offline user simply misses it.
func (n *WebSocketNotifier) Notify(userID, title, body, roomID string) {
	data, err := json.Marshal(payload{
		Type:      "notification",
		Title:     title,
		Body:      body,
		RoomID:    roomID,
		Timestamp: time.Now(),
	})
	if err != nil {
		logger.Error("Failed to marshal notification for %s: %v", userID, err)
		return
	}
	n.wsManager.SendToUser(userID, data)
}
