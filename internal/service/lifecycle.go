package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
)

// NewChat saves the current transcript when it holds more than the
// welcome message, then resets the conversation. It returns the saved
// session id, or "" when nothing was saved.
func (s *Service) NewChat(ctx context.Context, convID string) (string, error) {
	conv, err := s.acquire(convID)
	if err != nil {
		return "", err
	}
	defer conv.mu.Unlock()

	savedID := s.saveTranscript(ctx, conv)
	if savedID != "" {
		s.notify(ctx, convID, "Previous chat saved", "Starting a fresh conversation", domain.VariantDefault)
	}

	conv.messages = []domain.Message{s.welcomeMessage()}
	conv.loadedSessionID = ""
	conv.tracker.Clear()

	return savedID, nil
}

// CloseConversation saves the transcript when it holds more than the
// welcome message and forgets the conversation. Calls that already hold
// the conversation fail with ErrConversationNotFound once it is closed.
func (s *Service) CloseConversation(ctx context.Context, convID string) (string, error) {
	conv, err := s.acquire(convID)
	if err != nil {
		return "", err
	}

	savedID := s.saveTranscript(ctx, conv)
	conv.closed = true
	conv.messages = nil
	conv.tracker.Clear()
	conv.mu.Unlock()

	if savedID != "" {
		s.notify(ctx, convID, "Chat saved", "Your conversation has been saved to history", domain.VariantDefault)
	}

	s.conversations.Remove(convID)
	s.logger.Debug("Conversation closed", zap.String("conversation_id", convID), zap.String("session_id", savedID))
	return savedID, nil
}

// LoadSession replaces the conversation with a saved session and rebuilds
// its context from the transcript. An unsaved transcript is saved first.
func (s *Service) LoadSession(ctx context.Context, convID, sessionID string) (*ConversationView, error) {
	conv, err := s.acquire(convID)
	if err != nil {
		return nil, err
	}
	defer conv.mu.Unlock()

	session := s.history.Get(ctx, sessionID)
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if conv.loadedSessionID == "" {
		s.saveTranscript(ctx, conv)
	}

	conv.messages = append([]domain.Message(nil), session.Messages...)
	conv.loadedSessionID = session.ID
	conv.tracker.Clear()
	conv.tracker.Replay(conv.messages)

	s.notify(ctx, convID, "Chat loaded", fmt.Sprintf("Loaded: %s", session.Title), domain.VariantDefault)
	return conv.view(), nil
}

// saveTranscript must be called with conv.mu held.
func (s *Service) saveTranscript(ctx context.Context, conv *conversation) string {
	if len(conv.messages) <= 1 {
		return ""
	}
	id, ok := s.history.Save(ctx, conv.messages)
	if !ok {
		s.logger.Warn("Chat session was not saved", zap.String("conversation_id", conv.id))
		return ""
	}
	return id
}
