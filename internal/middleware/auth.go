package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketgate/api/internal/respond"
	"marketgate/api/internal/service"
)

// SessionAuth resolves the bearer session token into a normalized
// identity and attaches it to the request context. Unknown, expired,
// and revoked tokens all fail identically.
func SessionAuth(identities *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			respond.AbortError(c, http.StatusUnauthorized, "Session token required", respond.CodeInvalidSession)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		identity, err := identities.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				respond.AbortError(c, http.StatusUnauthorized, "Session not found or expired", respond.CodeInvalidSession)
				return
			}
			respond.AbortError(c, http.StatusInternalServerError, "Database connection failed", respond.CodeDBConnectionError)
			return
		}

		c.Set("session_token", token)
		c.Set("identity", identity)

		c.Next()
	}
}
