package checkin

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	checkins := r.Group("/checkins")
	checkins.Use(middleware.AuthMiddleware())
	{
		// Idempotency keys absorb double-taps from flaky worker devices;
		// the per-user rate limit keeps QR scanner loops from hammering
		// the upsert path.
		checkins.POST("",
			middleware.RateLimitByUser(rate.Limit(2), 5),
			middleware.Idempotency(rdb),
			h.Record,
		)
		checkins.GET("/status", h.Status)
		checkins.GET("/presence", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.PresenceList)
	}
}
