package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/domain/dashboard"
)

// DashboardHandler serves the landing page aggregates.
type DashboardHandler struct {
	*BaseHandler
	service *dashboard.Service
	now     func() time.Time
}

// NewDashboardHandler creates a dashboard handler. now defaults to time.Now.
func NewDashboardHandler(base *BaseHandler, service *dashboard.Service, now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{BaseHandler: base, service: service, now: now}
}

// Get handles GET /dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	board, err := h.service.Build(ctx, appctx.GetRole(ctx), h.now())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, board)
}
