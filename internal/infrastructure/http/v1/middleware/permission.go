package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/core/apperror"
	appctx "storeadmin/internal/core/context"
)

// RequireRole middleware lets through users holding one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if slices.Contains(roles, user.Role) {
			c.Next()
			return
		}
		_ = c.Error(
			apperror.NewForbidden("You do not have permission for this action").
				WithDetail("required_roles", roles),
		)
		c.Abort()
	}
}
