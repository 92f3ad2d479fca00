package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SendMessageRequest is the body of a chat turn.
type SendMessageRequest struct {
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}

// RouteRequest is the body of a routing preview.
type RouteRequest struct {
	Content string `json:"content"`
}

// LoadSessionRequest names the saved session to load.
type LoadSessionRequest struct {
	SessionID string `json:"session_id"`
}

// StartConversation creates a conversation.
// POST /v1/conversations
func (h *Handler) StartConversation(c echo.Context) error {
	view := h.service.StartConversation(c.Request().Context())
	return c.JSON(http.StatusCreated, view)
}

// GetConversation returns the transcript and context of a conversation.
// GET /v1/conversations/:id
func (h *Handler) GetConversation(c echo.Context) error {
	view, err := h.service.Conversation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// SendMessage runs one chat turn.
// POST /v1/conversations/:id/messages
func (h *Handler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.service.SendMessage(c.Request().Context(), c.Param("id"), req.Content, req.Attachments)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// PreviewRoute reports the routing decision for a message without sending it.
// POST /v1/conversations/:id/route
func (h *Handler) PreviewRoute(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content is required"})
	}

	result, err := h.service.PreviewRoute(c.Request().Context(), c.Param("id"), req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetContext returns the context summary of a conversation.
// GET /v1/conversations/:id/context
func (h *Handler) GetContext(c echo.Context) error {
	ctx := c.Request().Context()
	view, err := h.service.Conversation(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": view.ContextSummary,
		"context": view.Context,
	})
}

// NewChat saves the conversation and starts over.
// POST /v1/conversations/:id/reset
func (h *Handler) NewChat(c echo.Context) error {
	savedID, err := h.service.NewChat(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":               true,
		"saved_session_id": savedID,
	})
}

// LoadSession replaces the conversation with a saved session.
// POST /v1/conversations/:id/load
func (h *Handler) LoadSession(c echo.Context) error {
	var req LoadSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_id is required"})
	}

	view, err := h.service.LoadSession(c.Request().Context(), c.Param("id"), req.SessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CloseConversation saves and drops a conversation.
// DELETE /v1/conversations/:id
func (h *Handler) CloseConversation(c echo.Context) error {
	savedID, err := h.service.CloseConversation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":               true,
		"saved_session_id": savedID,
	})
}
