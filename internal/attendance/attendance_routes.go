package attendance

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/deke-r/senseHrm/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	r.POST("/attendance", rbac.Authorize(enforcer, "attendance", "write"), h.Mark)
	r.GET("/attendance", rbac.Authorize(enforcer, "attendance", "read"), h.ListOwn)
	r.GET("/manage/attendance/export", rbac.Authorize(enforcer, "manage", "read"), h.Export)
}
