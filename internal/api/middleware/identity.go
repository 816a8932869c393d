// Package middleware contains the gin middleware shared by the API routes.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxUserID is the gin.Context key holding the caller's UUID.
const CtxUserID = "userID"

// headerUserID is set by the authenticating gateway in front of this service.
const headerUserID = "X-User-ID"

// ──────────────────────────────────────────────────────────────────────────────
// IdentityMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// IdentityMiddleware reads the caller identity forwarded by the upstream
// gateway. Authentication itself happens there; this service only requires a
// well-formed user id on routes that act on behalf of a bettor.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(headerUserID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + headerUserID + " header",
			})
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "malformed " + headerUserID + " header",
			})
			return
		}
		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the caller's UUID from the gin context. Returns uuid.Nil
// if IdentityMiddleware was not applied.
func GetUserID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
