package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"keepsake-be/internal/entities"
	"keepsake-be/internal/jwt"
	"keepsake-be/internal/repository"
)

// UserKey is the context key under which the authenticated user is stored.
const UserKey = "user"

// AuthMiddleware verifies the bearer token on each request and attaches the
// resolved user (password hash excluded from serialization) to the context.
// Downstream handlers can assume an authenticated, existing user is present.
func AuthMiddleware(tokens *jwt.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not authorized, no token",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		userID, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not authorized, invalid token",
			})
			return
		}

		// Resolve the token to a live user identity
		user, err := users.FindByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not authorized, invalid token",
			})
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// AdminMiddleware restricts a route to admin users. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "admin access required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleware,
// or nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *entities.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entities.User)
	return user
}
