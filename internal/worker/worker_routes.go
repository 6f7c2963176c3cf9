package worker

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	workers := r.Group("/workers")
	workers.Use(middleware.AuthMiddleware())
	{
		workers.GET("", middleware.RBACAuthorize(rbacService, "worker", "read"), h.GetAll)
		workers.GET("/:id", middleware.RBACAuthorize(rbacService, "worker", "read"), h.GetByID)
		workers.POST("", middleware.RBACAuthorize(rbacService, "worker", "create"), h.Create)
		workers.PUT("/:id", middleware.RBACAuthorize(rbacService, "worker", "update"), h.Update)
		workers.DELETE("/:id", middleware.RBACAuthorize(rbacService, "worker", "delete"), h.Delete)
	}
}
