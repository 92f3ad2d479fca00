package domain

// RoutingResult is the router's decision for one message.
type RoutingResult struct {
	AgentID     string      `json:"agent_id"`
	Confidence  float64     `json:"confidence"`
	Reason      string      `json:"reason"`
	ContextType ContextType `json:"context_type"`
}

// ChatResponse is what a chat backend returns for one message.
// Only these fields are ever read; Title and Content are optional.
type ChatResponse struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Source  string `json:"source,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Notification is a user-visible message raised by the orchestrator.
type Notification struct {
	ConversationID string              `json:"conversation_id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Variant        NotificationVariant `json:"variant"`
}
