package service

import (
	"context"
	"fmt"

	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/history"
)

func (s *Service) ListSessions(ctx context.Context) []history.Overview {
	return history.DescribeAll(s.history.All(ctx))
}

func (s *Service) SearchSessions(ctx context.Context, query string) []history.Overview {
	return history.DescribeAll(s.history.Search(ctx, query))
}

func (s *Service) GroupedSessions(ctx context.Context) []history.DateGroup {
	return s.history.ByDate(ctx, s.now())
}

func (s *Service) GetSession(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	session := s.history.Get(ctx, sessionID)
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func (s *Service) DeleteSession(ctx context.Context, sessionID string) bool {
	return s.history.Delete(ctx, sessionID)
}

func (s *Service) ClearSessions(ctx context.Context) bool {
	return s.history.Clear(ctx)
}
