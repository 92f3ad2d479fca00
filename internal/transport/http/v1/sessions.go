package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSessions lists saved sessions, most recent first.
// GET /v1/sessions?q=<search>&group=date
func (h *Handler) ListSessions(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("group") == "date" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"groups": h.service.GroupedSessions(ctx),
		})
	}

	if q := c.QueryParam("q"); q != "" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"sessions": h.service.SearchSessions(ctx, q),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": h.service.ListSessions(ctx),
	})
}

// GetSession returns one saved session with its transcript.
// GET /v1/sessions/:id
func (h *Handler) GetSession(c echo.Context) error {
	session, err := h.service.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// DeleteSession deletes a saved session.
// DELETE /v1/sessions/:id
func (h *Handler) DeleteSession(c echo.Context) error {
	ok := h.service.DeleteSession(c.Request().Context(), c.Param("id"))
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete session"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// ClearSessions deletes every saved session.
// DELETE /v1/sessions
func (h *Handler) ClearSessions(c echo.Context) error {
	ok := h.service.ClearSessions(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to clear sessions"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
