package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/tracker"
)

// WelcomeMessageID is the id of the greeting every conversation starts with.
const WelcomeMessageID = "welcome"

const welcomeText = `Hi! I'm your AI Assistant with specialized capabilities.

I can help you with:
• YouTube video analysis - Paste any YouTube URL for summaries and insights
• Travel planning - Create custom itineraries for any destination
• Finance & markets - Stock prices, crypto data, market analysis
• News & current events - Breaking news, tech news, business updates
• Music generation - Create custom music and compositions
• Data analysis - Process CSV files and generate insights
• Calculations & problem solving - Math, data analysis, and more

I'm context-aware and will remember our conversation to provide better assistance.`

// conversation is one live chat. mu serializes turns; the tracker is not
// safe for concurrent use.
type conversation struct {
	id string

	mu              sync.Mutex
	tracker         *tracker.Tracker
	messages        []domain.Message
	loadedSessionID string
	createdAt       time.Time
	closed          bool
}

// ConversationView is a point-in-time copy of a conversation.
type ConversationView struct {
	ID              string                      `json:"id"`
	Messages        []domain.Message            `json:"messages"`
	Context         tracker.ConversationContext `json:"context"`
	ContextSummary  string                      `json:"context_summary"`
	LoadedSessionID string                      `json:"loaded_session_id,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func (s *Service) welcomeMessage() domain.Message {
	return domain.Message{
		ID:        WelcomeMessageID,
		Content:   welcomeText,
		Role:      domain.RoleAssistant,
		Timestamp: s.now(),
	}
}

// StartConversation creates a conversation holding only the welcome
// message, with empty context.
func (s *Service) StartConversation(ctx context.Context) *ConversationView {
	conv := &conversation{
		id:        s.newID(),
		tracker:   tracker.New(),
		messages:  []domain.Message{s.welcomeMessage()},
		createdAt: s.now(),
	}
	s.conversations.Add(conv.id, conv)

	s.logger.Debug("Conversation started", zap.String("conversation_id", conv.id))

	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.view()
}

// Conversation returns the current state of a conversation.
func (s *Service) Conversation(ctx context.Context, convID string) (*ConversationView, error) {
	conv, err := s.acquire(convID)
	if err != nil {
		return nil, err
	}
	defer conv.mu.Unlock()
	return conv.view(), nil
}

// ContextSummary returns the one-line context summary of a conversation.
func (s *Service) ContextSummary(ctx context.Context, convID string) (string, error) {
	conv, err := s.acquire(convID)
	if err != nil {
		return "", err
	}
	defer conv.mu.Unlock()
	return conv.tracker.Summary(), nil
}

// PreviewRoute reports where message would be routed without changing
// the conversation.
func (s *Service) PreviewRoute(ctx context.Context, convID, message string) (domain.RoutingResult, error) {
	conv, err := s.acquire(convID)
	if err != nil {
		return domain.RoutingResult{}, err
	}
	defer conv.mu.Unlock()
	return s.router.Route(conv.tracker.Clone(), message, s.catalog.List()), nil
}

func (s *Service) lookup(convID string) (*conversation, error) {
	v, ok := s.conversations.Get(convID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, convID)
	}
	return v.(*conversation), nil
}

// acquire returns the conversation with its lock held. The caller unlocks.
func (s *Service) acquire(convID string) (*conversation, error) {
	conv, err := s.lookup(convID)
	if err != nil {
		return nil, err
	}
	if err := conv.lock(); err != nil {
		return nil, err
	}
	return conv, nil
}

// lock takes c.mu and fails once the conversation is closed, so callers
// holding a stale pointer cannot add to a dropped transcript.
func (c *conversation) lock() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrConversationNotFound, c.id)
	}
	return nil
}

// view must be called with c.mu held.
func (c *conversation) view() *ConversationView {
	return &ConversationView{
		ID:              c.id,
		Messages:        append([]domain.Message(nil), c.messages...),
		Context:         c.tracker.Snapshot(),
		ContextSummary:  c.tracker.Summary(),
		LoadedSessionID: c.loadedSessionID,
		CreatedAt:       c.createdAt,
	}
}
