package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorbit/lms-api/internal/application"
	"github.com/mentorbit/lms-api/pkg/response"
)

// RequirePermission gates a route on the authenticated user holding the
// named permission through any of its roles. Must run after Auth.
func RequirePermission(users *application.UserService, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("userID")
		if uid == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		perms, err := users.PermissionsForUser(c.Request.Context(), uid)
		if err != nil {
			response.AbortError[any](c, http.StatusInternalServerError, "permission check failed", nil)
			return
		}
		for _, p := range perms {
			if p.Name == name {
				c.Next()
				return
			}
		}
		response.AbortError[any](c, http.StatusForbidden, "forbidden", nil)
	}
}
