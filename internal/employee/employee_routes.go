package employee

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/deke-r/senseHrm/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	{
		employees.GET("", rbac.Authorize(enforcer, "employees", "read"), h.List)
		employees.GET("/options", rbac.Authorize(enforcer, "employees", "read"), h.Options)
		employees.GET("/:id", rbac.Authorize(enforcer, "employees", "read"), h.Get)
		employees.POST("", rbac.Authorize(enforcer, "employees", "write"), h.Create)
		employees.PUT("/:id", rbac.Authorize(enforcer, "employees", "write"), h.Update)
	}

	r.GET("/dashboard/stats", h.DashboardStats)
}
