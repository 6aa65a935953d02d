// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"pharmabill/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler is the surface shared by all catalog handlers.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// DocumentRouteHandler is the surface shared by all document handlers.
// Update and Delete are optional: returns are immutable once created.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Post(c *gin.Context)
	Unpost(c *gin.Context)
}

// DocumentUpdateHandler is implemented by documents that allow editing
// before posting.
type DocumentUpdateHandler interface {
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// PaymentRouteHandler is implemented by documents that settle payments.
type PaymentRouteHandler interface {
	ApplyPayment(c *gin.Context)
	ListPayments(c *gin.Context)
}

// ReturnsRouteHandler is implemented by documents that list the returns
// raised against them.
type ReturnsRouteHandler interface {
	ListReturns(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; writes require one of
// writeRoles.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, writeRoles ...string) {
	write := middleware.RequireRole(writeRoles...)

	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", write, handler.Create)
	group.PUT("/:id", write, handler.Update)
	group.DELETE("/:id", write, handler.Delete)
	group.POST("/:id/deletion-mark", write, handler.SetDeletionMark)
}

// RegisterDocumentRoutes registers CRUD and posting routes for a
// document. createRoles gates creation and editing; postRoles gates
// posting and unposting. Optional capabilities (update, payments,
// returns listing) are registered when the handler implements them.
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler, createRoles, postRoles []string) {
	create := middleware.RequireRole(createRoles...)
	post := middleware.RequireRole(postRoles...)

	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", create, handler.Create)
	group.POST("/:id/post", post, handler.Post)
	group.POST("/:id/unpost", post, handler.Unpost)

	if h, ok := handler.(DocumentUpdateHandler); ok {
		group.PUT("/:id", create, h.Update)
		group.DELETE("/:id", create, h.Delete)
	}

	if h, ok := handler.(PaymentRouteHandler); ok {
		group.POST("/:id/payments", create, h.ApplyPayment)
		group.GET("/:id/payments", h.ListPayments)
	}

	if h, ok := handler.(ReturnsRouteHandler); ok {
		group.GET("/:id/returns", h.ListReturns)
	}
}
