package handlers

import (
	"net/http"

	"monteuros/internal/service"

	"github.com/gin-gonic/gin"
)

const ctxSessionKey = "session"

// sessionMiddleware lets requests through only once a session is established.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	view := h.services.Session.Snapshot()
	switch view.State {
	case service.SessionLoading:
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error": errSessionLoading,
		})
		return
	case service.SessionUnauthenticated:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": errNotSignedIn,
		})
		return
	}

	// store in Gin context
	c.Set(ctxSessionKey, view.Session)
	c.Next()
}
