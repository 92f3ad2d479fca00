package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/prajwalun/agentbay/internal/domain"
)

func TestLogNotifierLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewLogNotifier(zap.New(core))

	n.Notify(context.Background(), domain.Notification{ConversationID: "c1", Title: "Chat saved", Variant: domain.VariantDefault})
	n.Notify(context.Background(), domain.Notification{ConversationID: "c1", Title: "Error", Variant: domain.VariantDestructive})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Chat saved", entries[0].ContextMap()["title"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestMultiFansOut(t *testing.T) {
	var a, b Recorder
	var called int
	m := Multi{&a, nil, &b, NotifierFunc(func(context.Context, domain.Notification) { called++ })}

	m.Notify(context.Background(), domain.Notification{Title: "hello"})

	assert.Len(t, a.Notifications(), 1)
	assert.Len(t, b.Notifications(), 1)
	assert.Equal(t, 1, called)

	a.Reset()
	assert.Empty(t, a.Notifications())
}
