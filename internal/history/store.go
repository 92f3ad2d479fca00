// Package history persists finished conversations as a single JSON
// collection under one key of a kv.Store.
//
// Every operation reads the whole collection and, when it changes
// anything, writes the whole collection back. Two writers working on the
// same key can overwrite each other's changes.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/kv"
)

const (
	// DefaultKey is the storage key of the session collection.
	DefaultKey = "agentbay_chat_history"
	// DefaultMaxSessions caps the collection; the oldest sessions are dropped.
	DefaultMaxSessions = 50
)

// Store is the session store. Read failures degrade to empty results and
// write failures to false/empty returns; both are logged, never raised.
type Store struct {
	kv          kv.Store
	key         string
	maxSessions int
	logger      *zap.Logger
	now         func() time.Time
	newID       func(time.Time) string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithMaxSessions overrides the collection cap.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a session store on top of store.
func NewStore(store kv.Store, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		kv:          store,
		key:         DefaultKey,
		maxSessions: DefaultMaxSessions,
		logger:      logger,
		now:         time.Now,
		newID:       newSessionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newSessionID combines the creation time with a random suffix.
func newSessionID(now time.Time) string {
	return fmt.Sprintf("chat_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// Save stores messages as a new session and returns its id. It refuses
// fewer than two messages, so a lone welcome message is never saved.
func (s *Store) Save(ctx context.Context, messages []domain.Message) (string, bool) {
	if len(messages) < 2 {
		return "", false
	}

	sessions, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Error saving chat session", zap.Error(err))
		return "", false
	}

	now := s.now()
	session := domain.ChatSession{
		ID:        s.newID(now),
		Title:     Title(messages),
		Messages:  append([]domain.Message(nil), messages...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	sessions = append([]domain.ChatSession{session}, sessions...)
	if len(sessions) > s.maxSessions {
		sessions = sessions[:s.maxSessions]
	}

	if err := s.write(ctx, sessions); err != nil {
		s.logger.Error("Error saving chat session", zap.Error(err), zap.String("session_id", session.ID))
		return "", false
	}

	s.logger.Debug("Chat session saved",
		zap.String("session_id", session.ID),
		zap.Int("messages", len(messages)),
		zap.Int("stored_sessions", len(sessions)))
	return session.ID, true
}

// All returns every session, most recently updated first. Missing or
// corrupt storage yields an empty list.
func (s *Store) All(ctx context.Context) []domain.ChatSession {
	sessions, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Error loading chat history", zap.Error(err))
		return []domain.ChatSession{}
	}
	return sessions
}

// Get returns the session with id, or nil.
func (s *Store) Get(ctx context.Context, id string) *domain.ChatSession {
	for _, session := range s.All(ctx) {
		if session.ID == id {
			return &session
		}
	}
	return nil
}

// Delete removes the session with id. Deleting an unknown id succeeds.
func (s *Store) Delete(ctx context.Context, id string) bool {
	sessions, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Error deleting chat session", zap.Error(err), zap.String("session_id", id))
		return false
	}

	kept := sessions[:0]
	for _, session := range sessions {
		if session.ID != id {
			kept = append(kept, session)
		}
	}

	if err := s.write(ctx, kept); err != nil {
		s.logger.Error("Error deleting chat session", zap.Error(err), zap.String("session_id", id))
		return false
	}
	return true
}

// Clear removes the whole collection.
func (s *Store) Clear(ctx context.Context) bool {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.logger.Error("Error clearing chat sessions", zap.Error(err))
		return false
	}
	return true
}

// Search returns the sessions whose title or any message contains query,
// case-insensitively, most recent first.
func (s *Store) Search(ctx context.Context, query string) []domain.ChatSession {
	q := strings.ToLower(query)
	matches := []domain.ChatSession{}
	for _, session := range s.All(ctx) {
		if matchesSession(session, q) {
			matches = append(matches, session)
		}
	}
	return matches
}

func matchesSession(session domain.ChatSession, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(session.Title), lowerQuery) {
		return true
	}
	for _, msg := range session.Messages {
		if strings.Contains(strings.ToLower(msg.Content), lowerQuery) {
			return true
		}
	}
	return false
}

// load reads the collection. A missing key or undecodable data is an
// empty collection, so the next write replaces corrupt data. Only storage
// errors are returned.
func (s *Store) load(ctx context.Context) ([]domain.ChatSession, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read session collection: %w", err)
	}
	if !ok || raw == "" {
		return []domain.ChatSession{}, nil
	}

	var sessions []domain.ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		s.logger.Error("Error loading chat history, treating it as empty",
			zap.String("key", s.key), zap.Error(err))
		return []domain.ChatSession{}, nil
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (s *Store) write(ctx context.Context, sessions []domain.ChatSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode session collection: %w", err)
	}
	return s.kv.Set(ctx, s.key, string(data))
}
