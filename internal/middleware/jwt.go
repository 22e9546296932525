package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eserbisyo/brgy-docs-api/internal/service"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
	"github.com/eserbisyo/brgy-docs-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// legacyTokenCookie is the cookie name the previous barangay portal set.
// Clients still on the old frontend authenticate through it.
const legacyTokenCookie = "token"

// JWT protects routes by requiring a valid access token, taken from the
// Authorization header or, failing that, the legacy auth cookie.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
		}
		return parts[1], nil
	}

	if cookie, err := c.Cookie(legacyTokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}

	return "", appErrors.ErrUnauthorized
}
