package ws

import (
	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/service"
	"github.com/prajwalun/agentbay/internal/tracker"
)

// Message types from client to server
const (
	TypeHello       = "hello"
	TypeUserMessage = "user_message"
	TypeNewChat     = "new_chat"
	TypeCloseChat   = "close_chat"
	TypeLoadSession = "load_session"
	TypeGetContext  = "get_context"
)

// Message types from server to client
const (
	TypeHelloAck     = "hello_ack"
	TypeReply        = "reply"
	TypeNotification = "notification"
	TypeContext      = "context"
	TypeChatReset    = "chat_reset"
	TypeError        = "error"
)

// Error codes
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeHelloRequired  = "hello_required"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeEmptyMessage   = "empty_message"
	ErrorCodeAgentBlocked   = "agent_blocked"
	ErrorCodeBackendFailed  = "backend_failed"
	ErrorCodeInternalError  = "internal_error"
	ErrorCodeBusy           = "busy"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type           string `json:"type"`
	Ts             int64  `json:"ts"`
	RequestID      string `json:"request_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// HelloMessage opens or resumes a conversation.
type HelloMessage struct {
	BaseMessage
	APIKey string `json:"api_key,omitempty"`
}

// HelloAckMessage carries the bound conversation.
type HelloAckMessage struct {
	BaseMessage
	Messages []domain.Message `json:"messages"`
	Agents   []domain.Agent   `json:"agents"`
}

// UserMessage is one chat turn.
type UserMessage struct {
	BaseMessage
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}

// LoadSessionMessage asks to replace the conversation with a saved session.
type LoadSessionMessage struct {
	BaseMessage
	SessionID string `json:"session_id"`
}

// ReplyMessage is the assistant's answer to a user message.
type ReplyMessage struct {
	BaseMessage
	Routing   domain.RoutingResult `json:"routing"`
	AgentName string               `json:"agent_name"`
	Message   domain.Message       `json:"message"`
}

// NotificationMessage wraps a notification.
type NotificationMessage struct {
	BaseMessage
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Variant     domain.NotificationVariant `json:"variant"`
}

// ContextMessage reports the conversation context.
type ContextMessage struct {
	BaseMessage
	Summary string                      `json:"summary"`
	Context tracker.ConversationContext `json:"context"`
}

// ChatResetMessage is sent after new_chat, close_chat and load_session.
type ChatResetMessage struct {
	BaseMessage
	SavedSessionID  string           `json:"saved_session_id,omitempty"`
	LoadedSessionID string           `json:"loaded_session_id,omitempty"`
	Closed          bool             `json:"closed,omitempty"`
	Messages        []domain.Message `json:"messages"`
}

// ErrorMessage is sent when a request fails.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

func contextMessage(view *service.ConversationView) ContextMessage {
	return ContextMessage{
		BaseMessage: BaseMessage{Type: TypeContext, ConversationID: view.ID},
		Summary:     view.ContextSummary,
		Context:     view.Context,
	}
}
