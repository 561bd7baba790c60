package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Current session
// @Description  Resolver state (loading, unauthenticated, authenticated), the session if any and whether mock mode is active.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  service.SessionView
// @Router       /auth/session [get]
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Session.Snapshot())
}

// @Summary      Sign in as the test technician
// @Description  Tries the backend first and falls back to a local 24h mock session. Always returns a session.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  service.SessionView
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	s := h.services.Session.Login(c.Request.Context())
	if h.log != nil {
		h.log.Infow("auth_login", "user", s.User.ID, "mock", s.IsMock())
	}
	c.JSON(http.StatusOK, h.services.Session.Snapshot())
}

// @Summary      Sign out
// @Description  Clears the persisted mock session and signs out of the backend.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  service.SessionView
// @Router       /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	h.services.Session.Logout(c.Request.Context())
	c.JSON(http.StatusOK, h.services.Session.Snapshot())
}
