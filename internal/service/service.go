// Package service drives a chat turn: route, check policy, call the
// backend, commit context, and persist finished conversations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/backend"
	"github.com/prajwalun/agentbay/internal/catalog"
	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/history"
	"github.com/prajwalun/agentbay/internal/notify"
	"github.com/prajwalun/agentbay/internal/policy"
	"github.com/prajwalun/agentbay/internal/router"
)

// DefaultCacheSize is the number of live conversations kept in memory.
const DefaultCacheSize = 1024

// Deps are the collaborators of a Service. Router, Catalog, Notifier and
// Logger get defaults when nil; Policy is optional.
type Deps struct {
	Router    *router.Router
	Catalog   *catalog.Catalog
	History   *history.Store
	Backend   backend.Client
	Notifier  notify.Notifier
	Policy    *policy.Engine
	Logger    *zap.Logger
	CacheSize int
}

// Service is the chat orchestrator.
type Service struct {
	router        *router.Router
	catalog       *catalog.Catalog
	history       *history.Store
	backend       backend.Client
	notifier      notify.Notifier
	policyEngine  *policy.Engine
	logger        *zap.Logger
	conversations *lru.Cache
	now           func() time.Time
	newID         func() string
}

// New creates a Service.
func New(deps Deps) (*Service, error) {
	if deps.History == nil {
		return nil, fmt.Errorf("history store is required")
	}
	if deps.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}

	s := &Service{
		router:       deps.Router,
		catalog:      deps.Catalog,
		history:      deps.History,
		backend:      deps.Backend,
		notifier:     deps.Notifier,
		policyEngine: deps.Policy,
		logger:       deps.Logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	if s.router == nil {
		s.router = router.New()
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(s.logger)
	}

	size := deps.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.NewWithEvict(size, func(key, _ interface{}) {
		s.logger.Warn("Conversation evicted from cache", zap.Any("conversation_id", key))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation cache: %w", err)
	}
	s.conversations = cache

	return s, nil
}

// ListAgents returns the agent catalog.
func (s *Service) ListAgents() []domain.Agent {
	return s.catalog.List()
}

func (s *Service) notify(ctx context.Context, convID, title, description string, variant domain.NotificationVariant) {
	s.notifier.Notify(ctx, domain.Notification{
		ConversationID: convID,
		Title:          title,
		Description:    description,
		Variant:        variant,
	})
}
