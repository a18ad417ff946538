package middleware

import (
	"net/http"               // HTTP status codes
	"strings"                // String manipulation
	"sweetshop/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by AuthMiddleware for downstream handlers
const (
	ContextUserID  = "userID"  // Authenticated user's ID
	ContextIsAdmin = "isAdmin" // Authenticated user's role flag
)

// AuthMiddleware validates the bearer token and attaches the caller's
// identity and role to the request context
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails (bad signature or expired), abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ContextUserID, claims.UserID)   // Store userID in context
		c.Set(ContextIsAdmin, claims.IsAdmin) // Store role flag in context
		c.Next()                              // Proceed to the next handler
	}
}
