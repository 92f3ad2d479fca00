package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	// ErrBufferFull is returned when a connection's send buffer is full.
	ErrBufferFull = errors.New("send buffer full")

	// ErrConnectionClosed is returned for sends after the hub closed the connection.
	ErrConnectionClosed = errors.New("connection closed")
)

// maxQueuedTurns bounds the user messages waiting on one connection.
const maxQueuedTurns = 16

// Connection represents a single WebSocket connection.
type Connection struct {
	ID             string
	ConversationID string
	Conn           *websocket.Conn
	Send           chan []byte

	// turns runs one connection's user messages in arrival order.
	turns chan func()

	// closed is set under Hub.mu when Send is closed.
	closed bool
	mu     sync.Mutex
}

// conversationMessage is queued for every connection bound to a conversation.
type conversationMessage struct {
	conversationID string
	data           []byte
}

// Hub tracks connections and which conversation each one is bound to.
type Hub struct {
	connections   map[string]*Connection
	conversations map[string]map[string]bool

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *conversationMessage
	done       chan struct{}

	logger *zap.Logger
	mu     sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		connections:   make(map[string]*Connection),
		conversations: make(map[string]map[string]bool),
		register:      make(chan *Connection),
		unregister:    make(chan *Connection),
		broadcast:     make(chan *conversationMessage, 256),
		done:          make(chan struct{}),
		logger:        logger,
	}
}

// Run is the hub's main loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn.ID] = conn
			h.mu.Unlock()
			h.logger.Debug("Connection registered", zap.String("connection_id", conn.ID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn.ID]; ok {
				delete(h.connections, conn.ID)
				h.unbindLocked(conn)
				conn.closed = true
				close(conn.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("Connection unregistered", zap.String("connection_id", conn.ID))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for connID := range h.conversations[msg.conversationID] {
				conn, exists := h.connections[connID]
				if !exists {
					continue
				}
				select {
				case conn.Send <- msg.data:
				default:
					h.logger.Warn("Connection buffer full, closing", zap.String("connection_id", connID))
					go h.Unregister(conn)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NewConnection wraps ws in a Connection. It is not registered yet.
func (h *Hub) NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ID:    uuid.New().String(),
		Conn:  ws,
		Send:  make(chan []byte, 256),
		turns: make(chan func(), maxQueuedTurns),
	}
}

// Register registers a connection with the hub.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister removes a connection and closes its send channel.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Bind attaches conn to a conversation, detaching it from any previous one.
func (h *Hub) Bind(conn *Connection, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unbindLocked(conn)
	conn.ConversationID = conversationID
	if h.conversations[conversationID] == nil {
		h.conversations[conversationID] = make(map[string]bool)
	}
	h.conversations[conversationID][conn.ID] = true
}

func (h *Hub) unbindLocked(conn *Connection) {
	if conn.ConversationID == "" || h.conversations[conn.ConversationID] == nil {
		return
	}
	delete(h.conversations[conn.ConversationID], conn.ID)
	if len(h.conversations[conn.ConversationID]) == 0 {
		delete(h.conversations, conn.ConversationID)
	}
}

// Broadcast queues data for every connection bound to conversationID.
func (h *Hub) Broadcast(conversationID string, data []byte) {
	select {
	case h.broadcast <- &conversationMessage{conversationID: conversationID, data: data}:
	case <-h.done:
	}
}

// BroadcastJSON encodes v and broadcasts it.
func (h *Hub) BroadcastJSON(conversationID string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(conversationID, data)
	return nil
}

// SendJSONToConnection queues v for one connection. It returns
// ErrConnectionClosed once the hub has unregistered conn.
func (h *Hub) SendJSONToConnection(conn *Connection, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if conn.closed {
		return ErrConnectionClosed
	}
	select {
	case conn.Send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// HasActiveConnections reports whether any connection is bound to conversationID.
func (h *Hub) HasActiveConnections(conversationID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conversations[conversationID]) > 0
}

// WriteMessage writes a message to the connection with proper locking.
func (c *Connection) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// SetWriteDeadline sets the write deadline for the connection.
func (c *Connection) SetWriteDeadline(t time.Time) error {
	return c.Conn.SetWriteDeadline(t)
}

// SetReadDeadline sets the read deadline for the connection.
func (c *Connection) SetReadDeadline(t time.Time) error {
	return c.Conn.SetReadDeadline(t)
}

// Close closes the connection.
func (c *Connection) Close() error {
	return c.Conn.Close()
}
