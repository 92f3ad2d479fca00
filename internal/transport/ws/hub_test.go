package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub(zap.NewNop())
	go h.Run(ctx)
	return h
}

func TestHubSendAfterUnregister(t *testing.T) {
	h := startHub(t)

	conn := h.NewConnection(nil)
	h.Register(conn)
	require.Eventually(t, func() bool { return h.ConnectionCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(conn)
	require.Eventually(t, func() bool { return h.ConnectionCount() == 0 }, time.Second, 5*time.Millisecond)

	assert.NotPanics(t, func() {
		err := h.SendJSONToConnection(conn, map[string]string{"type": TypeContext})
		assert.ErrorIs(t, err, ErrConnectionClosed)
	})
}

func TestHubFullBufferClosesConnection(t *testing.T) {
	h := startHub(t)

	conn := h.NewConnection(nil)
	h.Register(conn)
	h.Bind(conn, "conv-1")
	require.Eventually(t, func() bool { return h.ConnectionCount() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < cap(conn.Send); i++ {
		require.NoError(t, h.SendJSONToConnection(conn, map[string]int{"n": i}))
	}
	assert.ErrorIs(t, h.SendJSONToConnection(conn, map[string]string{}), ErrBufferFull)

	require.NoError(t, h.BroadcastJSON("conv-1", map[string]string{"type": TypeReply}))
	require.Eventually(t, func() bool { return h.ConnectionCount() == 0 }, time.Second, 5*time.Millisecond)

	assert.False(t, h.HasActiveConnections("conv-1"))
	assert.NotPanics(t, func() {
		err := h.SendJSONToConnection(conn, map[string]string{"type": TypeError})
		assert.ErrorIs(t, err, ErrConnectionClosed)
	})
}
