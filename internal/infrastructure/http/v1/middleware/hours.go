package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/config"
	"storeadmin/internal/core/apperror"
)

// WorkingHours rejects requests outside the configured window with
// OUTSIDE_WORKING_HOURS. A disabled window lets everything through.
func WorkingHours(window config.WorkingHours, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		if !window.Contains(now()) {
			_ = c.Error(apperror.NewOutsideWorkingHours(window.Open, window.Close))
			c.Abort()
			return
		}
		c.Next()
	}
}
