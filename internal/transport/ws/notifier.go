package ws

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
)

// HubNotifier pushes notifications to the connections bound to the
// notification's conversation.
type HubNotifier struct {
	hub    *Hub
	logger *zap.Logger
}

// NewHubNotifier creates a HubNotifier.
func NewHubNotifier(hub *Hub, logger *zap.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, logger: logger}
}

// Notify broadcasts n. Conversations without connections drop it.
func (n *HubNotifier) Notify(_ context.Context, note domain.Notification) {
	if note.ConversationID == "" || !n.hub.HasActiveConnections(note.ConversationID) {
		return
	}

	msg := NotificationMessage{
		BaseMessage: BaseMessage{
			Type:           TypeNotification,
			Ts:             time.Now().UnixMilli(),
			ConversationID: note.ConversationID,
		},
		Title:       note.Title,
		Description: note.Description,
		Variant:     note.Variant,
	}
	if err := n.hub.BroadcastJSON(note.ConversationID, msg); err != nil {
		n.logger.Error("Failed to broadcast notification", zap.Error(err))
	}
}
