package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListAgents lists the agent catalog.
// GET /v1/agents
func (h *Handler) ListAgents(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"agents": h.service.ListAgents(),
	})
}
