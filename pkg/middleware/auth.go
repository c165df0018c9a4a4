package middleware

import (
	"net/http"
	"strings"

	"postboard/pkg/authz"
	"postboard/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// Authenticate resolves the caller from a Bearer token. Requests without an
// Authorization header continue as anonymous; malformed or invalid tokens are
// rejected with 401.
func Authenticate(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// RequireUser rejects anonymous callers with 403. Missing credentials are an
// authorization failure on the routes it guards, the same as a wrong owner.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == authz.Anonymous {
			c.JSON(http.StatusForbidden, gin.H{"error": "Authentication credentials were not provided"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, or authz.Anonymous.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return authz.Anonymous
}
