package client

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthMiddleware())
	{
		clients.GET("", middleware.RBACAuthorize(rbacService, "client", "read"), h.GetAll)
		clients.GET("/:id", middleware.RBACAuthorize(rbacService, "client", "read"), h.GetByID)
		clients.POST("", middleware.RBACAuthorize(rbacService, "client", "create"), h.Create)
		clients.PUT("/:id", middleware.RBACAuthorize(rbacService, "client", "update"), h.Update)
		clients.DELETE("/:id", middleware.RBACAuthorize(rbacService, "client", "delete"), h.Delete)
	}
}
