package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/utils"
)

// Context keys set for authenticated admin requests.
const (
	AdminIDKey    = "admin_id"
	AdminEmailKey = "admin_email"
)

type JWTMiddleware struct{}

func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{}
}

func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(AdminIDKey, claims.UserID)
		c.Set(AdminEmailKey, claims.Email)
		c.Next()
	}
}
