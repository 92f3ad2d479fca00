// Package ws serves the chat over WebSocket and pushes notifications to
// the connections bound to each conversation.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/service"
)

// Config holds connection limits and the optional API key.
type Config struct {
	APIKey         string
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	MaxMessageSize int64
	TurnTimeout    time.Duration
}

func (c *Config) setDefaults() {
	if c.PingInterval <= 0 {
		c.PingInterval = 30 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 65536
	}
	if c.TurnTimeout <= 0 {
		c.TurnTimeout = 2 * time.Minute
	}
}

// Server handles WebSocket connections.
type Server struct {
	cfg      Config
	hub      *Hub
	service  *service.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg Config, h *Hub, svc *service.Service, logger *zap.Logger) *Server {
	cfg.setDefaults()
	return &Server{
		cfg:     cfg,
		hub:     h,
		service: svc,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and starts the connection pumps.
// GET /ws
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade WebSocket", zap.Error(err))
		return err
	}

	conn := s.hub.NewConnection(ws)
	s.hub.Register(conn)

	ws.SetReadLimit(s.cfg.MaxMessageSize)

	go s.writePump(conn)
	go s.turnLoop(conn)
	go s.readPump(conn)

	return nil
}

func (s *Server) readPump(conn *Connection) {
	defer func() {
		close(conn.turns)
		s.hub.Unregister(conn)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	conn.Conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read error", zap.Error(err), zap.String("connection_id", conn.ID))
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		s.handleMessage(conn, message)
	}
}

func (s *Server) writePump(conn *Connection) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("Failed to write message", zap.Error(err), zap.String("connection_id", conn.ID))
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// turnLoop runs queued user messages one at a time, so each turn routes
// against the context left by the previous one.
func (s *Server) turnLoop(conn *Connection) {
	for turn := range conn.turns {
		turn()
	}
}

// handleMessage dispatches incoming messages to appropriate handlers.
func (s *Server) handleMessage(conn *Connection, data []byte) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	if base.Type == TypeHello {
		s.handleHello(conn, data)
		return
	}

	if conn.ConversationID == "" {
		s.sendError(conn, base.RequestID, ErrorCodeHelloRequired, "must send hello first")
		return
	}

	switch base.Type {
	case TypeUserMessage:
		s.handleUserMessage(conn, data)
	case TypeNewChat:
		s.handleNewChat(conn, base)
	case TypeCloseChat:
		s.handleCloseChat(conn, base)
	case TypeLoadSession:
		s.handleLoadSession(conn, data)
	case TypeGetContext:
		s.handleGetContext(conn, base)
	default:
		s.sendError(conn, base.RequestID, ErrorCodeInvalidMessage, "unknown message type: "+base.Type)
	}
}

// handleHello binds the connection to an existing conversation, or to a
// new one when none is named or the named one is gone.
func (s *Server) handleHello(conn *Connection, data []byte) {
	var msg HelloMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid hello message")
		return
	}

	if s.cfg.APIKey != "" && msg.APIKey != s.cfg.APIKey {
		s.sendError(conn, msg.RequestID, ErrorCodeUnauthorized, "invalid api_key")
		return
	}

	ctx := context.Background()
	var view *service.ConversationView
	if msg.ConversationID != "" {
		view, _ = s.service.Conversation(ctx, msg.ConversationID)
	}
	if view == nil {
		view = s.service.StartConversation(ctx)
	}

	s.hub.Bind(conn, view.ID)

	s.hub.SendJSONToConnection(conn, HelloAckMessage{
		BaseMessage: BaseMessage{
			Type:           TypeHelloAck,
			Ts:             time.Now().UnixMilli(),
			RequestID:      msg.RequestID,
			ConversationID: view.ID,
		},
		Messages: view.Messages,
		Agents:   s.service.ListAgents(),
	})

	s.logger.Debug("Hello handshake completed",
		zap.String("connection_id", conn.ID),
		zap.String("conversation_id", view.ID))
}

// handleUserMessage queues the turn on the connection's turn loop.
// Notifications and the reply reach the client through the hub in that
// order.
func (s *Server) handleUserMessage(conn *Connection, data []byte) {
	var msg UserMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid user_message message")
		return
	}

	convID := conn.ConversationID
	turn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.TurnTimeout)
		defer cancel()

		result, err := s.service.SendMessage(ctx, convID, msg.Content, msg.Attachments)
		if err != nil {
			s.sendErrorToConversation(convID, msg.RequestID, err)
			return
		}

		s.hub.BroadcastJSON(convID, ReplyMessage{
			BaseMessage: BaseMessage{
				Type:           TypeReply,
				Ts:             time.Now().UnixMilli(),
				RequestID:      msg.RequestID,
				ConversationID: convID,
			},
			Routing:   result.Routing,
			AgentName: result.AgentName,
			Message:   result.Reply,
		})
	}

	select {
	case conn.turns <- turn:
	default:
		s.sendError(conn, msg.RequestID, ErrorCodeBusy, "too many messages in flight")
	}
}

func (s *Server) handleNewChat(conn *Connection, base BaseMessage) {
	ctx := context.Background()
	convID := conn.ConversationID

	savedID, err := s.service.NewChat(ctx, convID)
	if err != nil {
		s.sendErrorToConversation(convID, base.RequestID, err)
		return
	}
	view, err := s.service.Conversation(ctx, convID)
	if err != nil {
		s.sendErrorToConversation(convID, base.RequestID, err)
		return
	}

	s.hub.BroadcastJSON(convID, ChatResetMessage{
		BaseMessage:    BaseMessage{Type: TypeChatReset, Ts: time.Now().UnixMilli(), RequestID: base.RequestID, ConversationID: convID},
		SavedSessionID: savedID,
		Messages:       view.Messages,
	})
}

// handleCloseChat saves and drops the conversation. Connections stay bound
// to the dropped id, so every request but hello fails with not_found.
func (s *Server) handleCloseChat(conn *Connection, base BaseMessage) {
	convID := conn.ConversationID

	savedID, err := s.service.CloseConversation(context.Background(), convID)
	if err != nil {
		s.sendErrorToConversation(convID, base.RequestID, err)
		return
	}

	s.hub.BroadcastJSON(convID, ChatResetMessage{
		BaseMessage:    BaseMessage{Type: TypeChatReset, Ts: time.Now().UnixMilli(), RequestID: base.RequestID, ConversationID: convID},
		SavedSessionID: savedID,
		Closed:         true,
	})
}

func (s *Server) handleLoadSession(conn *Connection, data []byte) {
	var msg LoadSessionMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.SessionID == "" {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "load_session requires session_id")
		return
	}

	convID := conn.ConversationID
	view, err := s.service.LoadSession(context.Background(), convID, msg.SessionID)
	if err != nil {
		s.sendErrorToConversation(convID, msg.RequestID, err)
		return
	}

	s.hub.BroadcastJSON(convID, ChatResetMessage{
		BaseMessage:     BaseMessage{Type: TypeChatReset, Ts: time.Now().UnixMilli(), RequestID: msg.RequestID, ConversationID: convID},
		LoadedSessionID: view.LoadedSessionID,
		Messages:        view.Messages,
	})
}

func (s *Server) handleGetContext(conn *Connection, base BaseMessage) {
	view, err := s.service.Conversation(context.Background(), conn.ConversationID)
	if err != nil {
		s.sendError(conn, base.RequestID, errorCode(err), err.Error())
		return
	}

	msg := contextMessage(view)
	msg.Ts = time.Now().UnixMilli()
	msg.RequestID = base.RequestID
	s.hub.SendJSONToConnection(conn, msg)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrConversationNotFound), errors.Is(err, service.ErrSessionNotFound):
		return ErrorCodeNotFound
	case errors.Is(err, service.ErrEmptyMessage):
		return ErrorCodeEmptyMessage
	case errors.Is(err, service.ErrAgentBlocked):
		return ErrorCodeAgentBlocked
	case errors.Is(err, service.ErrBackendFailed):
		return ErrorCodeBackendFailed
	default:
		return ErrorCodeInternalError
	}
}

// sendError sends an error message to a connection.
func (s *Server) sendError(conn *Connection, requestID, code, message string) {
	s.hub.SendJSONToConnection(conn, ErrorMessage{
		BaseMessage: BaseMessage{
			Type:           TypeError,
			Ts:             time.Now().UnixMilli(),
			RequestID:      requestID,
			ConversationID: conn.ConversationID,
		},
		Code:    code,
		Message: message,
	})
}

// sendErrorToConversation sends an error message to all connections of a conversation.
func (s *Server) sendErrorToConversation(convID, requestID string, err error) {
	s.hub.BroadcastJSON(convID, ErrorMessage{
		BaseMessage: BaseMessage{
			Type:           TypeError,
			Ts:             time.Now().UnixMilli(),
			RequestID:      requestID,
			ConversationID: convID,
		},
		Code:    errorCode(err),
		Message: err.Error(),
	})
}
