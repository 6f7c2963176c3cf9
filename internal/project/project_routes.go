package project

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("", middleware.RBACAuthorize(rbacService, "project", "read"), h.GetAll)
		projects.GET("/:id", middleware.RBACAuthorize(rbacService, "project", "read"), h.GetByID)
		projects.POST("", middleware.RBACAuthorize(rbacService, "project", "create"), h.Create)
		projects.PUT("/:id", middleware.RBACAuthorize(rbacService, "project", "update"), h.Update)
		projects.DELETE("/:id", middleware.RBACAuthorize(rbacService, "project", "delete"), h.Delete)
	}
}
