package domain

import "time"

// Message is a single chat message. It is not modified after creation.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	AgentUsed string    `json:"agentUsed,omitempty"`
	Type      string    `json:"type,omitempty"`
}

// ChatSession is a saved transcript of one finished conversation.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
