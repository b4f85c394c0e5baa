package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/cars")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes registers the operator catalog-management routes.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/cars")
	{
		group.GET("", h.ListAll)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/image", h.UploadImage)
	}
}
