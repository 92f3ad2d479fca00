// Package domain defines the core domain models for the chat router.
package domain

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContextType classifies why a message was routed to an agent.
type ContextType string

const (
	ContextVideo      ContextType = "video-related"
	ContextTravel     ContextType = "travel-related"
	ContextFinance    ContextType = "finance-related"
	ContextNews       ContextType = "news-related"
	ContextMusic      ContextType = "music-related"
	ContextData       ContextType = "data-related"
	ContextGeneral    ContextType = "general"
	ContextOutOfScope ContextType = "out-of-scope"
)

// Agent ids. The rules in the router refer to these literals directly.
const (
	AgentYouTube = "youtube-agent"
	AgentTravel  = "travel-agent"
	AgentFinance = "finance-agent"
	AgentNews    = "news-agent"
	AgentMusic   = "music-agent"
	AgentData    = "data-agent"
)

// NotificationVariant controls how a notification is presented.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)
