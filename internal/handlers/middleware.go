package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxOperatorID holds the id of the operator whose token passed settingsWriteGuard.
const ctxOperatorID = "operatorId"

const (
	errAuthMissing = "missing bearer token; sign in at /auth/sign-in"
	errAuthInvalid = "invalid or expired token"
)

// settingsWriteGuard lets threshold writes through when auth is off, and
// otherwise only with a valid "Authorization: Bearer <token>".
func (h *Handler) settingsWriteGuard(c *gin.Context) {
	if !h.opts.AuthEnabled {
		c.Next()
		return
	}

	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token = strings.TrimSpace(token); !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthMissing})
		return
	}

	id, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Warnw("settings_write_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthInvalid})
		return
	}

	c.Set(ctxOperatorID, id)
	c.Next()
}

// corsMiddleware allows the dashboard pages to be served from another origin.
func corsMiddleware(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
