// Package testutil builds fully wired components for transport tests.
package testutil

import (
	"testing"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/backend"
	"github.com/prajwalun/agentbay/internal/history"
	"github.com/prajwalun/agentbay/internal/kv"
	"github.com/prajwalun/agentbay/internal/notify"
	"github.com/prajwalun/agentbay/internal/service"
)

// NewTestSQLiteStore opens an in-memory SQLite store closed at test end.
func NewTestSQLiteStore(t *testing.T) *kv.SQLiteStore {
	t.Helper()

	s, err := kv.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// NewTestService wires a Service over in-memory SQLite, the given backend
// (the mock backend when nil) and a recording notifier.
func NewTestService(t *testing.T, client backend.Client) (*service.Service, *notify.Recorder) {
	t.Helper()

	if client == nil {
		client = backend.NewMockClient()
	}
	recorder := &notify.Recorder{}

	svc, err := service.New(service.Deps{
		History:  history.NewStore(NewTestSQLiteStore(t), zap.NewNop()),
		Backend:  client,
		Notifier: recorder,
		Logger:   zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc, recorder
}
