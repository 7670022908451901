package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/core/apperror"
	"storeadmin/internal/domain/listing"
	"storeadmin/internal/domain/query"
	"storeadmin/internal/infrastructure/http/v1/dto"
)

// ListHandler serves the list views.
type ListHandler struct {
	*BaseHandler
	service *listing.Service
}

// NewListHandler creates a new list handler.
func NewListHandler(base *BaseHandler, service *listing.Service) *ListHandler {
	return &ListHandler{BaseHandler: base, service: service}
}

// Products handles GET /products
func (h *ListHandler) Products(c *gin.Context) { serve(h, c, h.service.ListProducts) }

// Sales handles GET /sales
func (h *ListHandler) Sales(c *gin.Context) { serve(h, c, h.service.ListSales) }

// Buys handles GET /buys
func (h *ListHandler) Buys(c *gin.Context) { serve(h, c, h.service.ListBuys) }

// Suppliers handles GET /suppliers
func (h *ListHandler) Suppliers(c *gin.Context) { serve(h, c, h.service.ListSuppliers) }

// Customers handles GET /customers
func (h *ListHandler) Customers(c *gin.Context) { serve(h, c, h.service.ListCustomers) }

// Users handles GET /users
func (h *ListHandler) Users(c *gin.Context) { serve(h, c, h.service.ListUsers) }

func serve[T any](h *ListHandler, c *gin.Context, list func(context.Context, query.Config) (*listing.View[T], error)) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	cfg, err := req.Config()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return
	}

	view, err := list(c.Request.Context(), cfg)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}
