package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/fashionhub/internal/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAdmin.
const (
	AdminIDKey       = "adminID"
	AdminUsernameKey = "adminUsername"
)

// TokenValidator is the part of auth.Issuer the guard needs.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RequireAdmin rejects requests without a valid bearer token: 401 when the
// token is missing, 403 when it does not validate.
func RequireAdmin(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		scheme, token, _ := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Access denied. No token provided.",
			})
			return
		}

		// 2. --- Validate Token ---
		claims, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid or expired token.",
			})
			return
		}

		// 3. --- Success ---
		c.Set(AdminIDKey, claims.AdminID)
		c.Set(AdminUsernameKey, claims.Username)
		c.Next()
	}
}
