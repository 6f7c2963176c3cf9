package compensation

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	compensation := r.Group("/compensation")
	compensation.Use(middleware.AuthMiddleware())
	{
		configs := compensation.Group("/deduction-configs")
		{
			configs.GET("", middleware.RBACAuthorize(rbacService, "compensation", "read"), h.GetConfigs)
			configs.POST("", middleware.RBACAuthorize(rbacService, "compensation", "create"), h.CreateConfig)
			configs.PUT("/:id", middleware.RBACAuthorize(rbacService, "compensation", "update"), h.UpdateConfig)
			configs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "compensation", "delete"), h.DeleteConfig)
		}

		loans := compensation.Group("/loans")
		{
			loans.GET("", middleware.RBACAuthorize(rbacService, "compensation", "read"), h.GetLoans)
			loans.POST("", middleware.RBACAuthorize(rbacService, "compensation", "create"), h.CreateLoan)
			loans.POST("/:id/settle", middleware.RBACAuthorize(rbacService, "compensation", "update"), h.SettleLoan)
		}
	}
}
