// Package v1 serves the chat REST API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prajwalun/agentbay/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the API routes on g, which is usually the
// /v1 group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/agents", h.ListAgents)

	g.POST("/conversations", h.StartConversation)
	g.GET("/conversations/:id", h.GetConversation)
	g.DELETE("/conversations/:id", h.CloseConversation)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.POST("/conversations/:id/route", h.PreviewRoute)
	g.GET("/conversations/:id/context", h.GetContext)
	g.POST("/conversations/:id/reset", h.NewChat)
	g.POST("/conversations/:id/load", h.LoadSession)

	g.GET("/sessions", h.ListSessions)
	g.DELETE("/sessions", h.ClearSessions)
	g.GET("/sessions/:id", h.GetSession)
	g.DELETE("/sessions/:id", h.DeleteSession)
}

// Health returns health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// writeError maps service errors to status codes.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrConversationNotFound), errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmptyMessage):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAgentBlocked):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrBackendFailed):
		status = http.StatusBadGateway
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
