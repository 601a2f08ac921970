package middleware

import (
	"net/http"
	"strings"

	"github.com/ParsifalKing/Menu-project/internal/user"
	"github.com/ParsifalKing/Menu-project/internal/utils"

	"github.com/gin-gonic/gin"
)

// Auth parses the bearer token (if any) and stores the user identity in the
// request context. It does not reject anonymous requests by itself.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractAccessToken(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireUser aborts with 401 unless the request carries a valid user identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": []string{"authentication required"}})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user has the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetUserRoleFromContext(c.Request.Context()) != string(user.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"errors": []string{"admin role required"}})
			return
		}
		c.Next()
	}
}

func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
