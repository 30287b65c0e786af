package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetById)
		runs.GET("/:id/items/:employeeId/payslip", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.DownloadPayslip)
		if redisClient != nil {
			runs.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payroll_run", "create"),
				handler.Compute,
			)
		} else {
			runs.POST("", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.Compute)
		}
		runs.POST("/:id/recompute", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.Recompute)
		// event-level permissions are checked by the service through the authorizer
		runs.POST("/:id/transitions", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.Transition)
		runs.POST("/:id/irregularities/:irregularityId/resolve", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.ResolveIrregularity)
		runs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "delete"), handler.Delete)
	}
}
