package middleware

import (
	"strings"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stashes the user id in the
// context. Every tracker route runs behind it; handlers read "user_id"
// without re-checking.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			utils.Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		userID, err := utils.ValidateAccessToken(token)
		if err != nil {
			utils.TrackError("auth", "invalid_token")
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
