package timesheet

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	{
		timesheets.GET("", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.GetAll)
		timesheets.GET("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.GetByID)
		timesheets.PUT("/:id/entries", middleware.RBACAuthorize(rbacService, "timesheet", "update"), h.UpdateEntry)
		timesheets.POST("/:id/recalculate", middleware.RBACAuthorize(rbacService, "timesheet", "update"), h.Recalculate)
	}
}
