package history

import (
	"time"

	"github.com/prajwalun/agentbay/internal/domain"
)

// Overview is the listing form of a session: no transcript, plus derived
// topics and a one-line summary.
type Overview struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	Topics       []string  `json:"topics"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Describe builds the overview of session.
func Describe(session domain.ChatSession) Overview {
	topics := Topics(session.Messages)
	if topics == nil {
		topics = []string{}
	}
	return Overview{
		ID:           session.ID,
		Title:        session.Title,
		MessageCount: len(session.Messages),
		Topics:       topics,
		Summary:      Summarize(session.Messages),
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}

// DescribeAll builds overviews in the order given.
func DescribeAll(sessions []domain.ChatSession) []Overview {
	out := make([]Overview, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, Describe(session))
	}
	return out
}
