package v1

import (
	"github.com/gin-gonic/gin"

	"storeadmin/internal/domain"
	"storeadmin/internal/infrastructure/http/v1/handlers"
)

// RegisterEntityRoutes registers the list view and the action endpoint of
// one collection.
//
// Usage:
//
//	RegisterEntityRoutes(api.Group("/products"), domain.EntityProduct, lists.Products, actionHandler)
func RegisterEntityRoutes(group *gin.RouterGroup, entity domain.Entity, list gin.HandlerFunc, actions *handlers.ActionHandler) {
	group.GET("", list)
	if actions != nil {
		group.POST("/:id/:action", actions.Request(entity))
	}
}
