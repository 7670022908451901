package handlers

import (
	"github.com/gin-gonic/gin"

	"storeadmin/internal/domain"
	"storeadmin/internal/domain/actions"
	"storeadmin/internal/infrastructure/http/v1/dto"
)

// ActionHandler opens and answers confirmations for list actions.
type ActionHandler struct {
	*BaseHandler
	service *actions.Service
}

// NewActionHandler creates an action handler.
func NewActionHandler(base *BaseHandler, service *actions.Service) *ActionHandler {
	return &ActionHandler{BaseHandler: base, service: service}
}

// Request returns the handler for POST /{entity}/:id/:action.
// The response is the pending confirmation (202).
func (h *ActionHandler) Request(entity domain.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}

		req, err := h.service.Request(c.Request.Context(), entity, id, domain.Action(c.Param("action")))
		if err != nil {
			h.Error(c, err)
			return
		}
		h.Accepted(c, dto.FromConfirmation(req))
	}
}

// Resolve handles POST /confirmations/:id
func (h *ActionHandler) Resolve(c *gin.Context) {
	var body dto.ConfirmRequest
	if !h.BindJSON(c, &body) {
		return
	}

	req, err := h.service.Resolve(c.Request.Context(), c.Param("id"), *body.Confirmed)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromConfirmation(req))
}
