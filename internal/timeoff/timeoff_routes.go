package timeoff

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/deke-r/senseHrm/internal/rbac"
)

// RegisterRoutes keeps the paths the web client already calls: the apply
// endpoints live under their legacy per-kind prefixes, the adjudication
// queue under /manage.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	r.POST("/leave/apply", rbac.Authorize(enforcer, "timeoff", "write"), h.ApplyLeave)
	r.POST("/wfh/workfromhome", rbac.Authorize(enforcer, "timeoff", "write"), h.ApplyWFH)
	r.POST("/partial", rbac.Authorize(enforcer, "timeoff", "write"), h.ApplyPartialDay)

	r.GET("/leave/history", rbac.Authorize(enforcer, "timeoff", "read"), h.History)
	r.POST("/leave/cancel", rbac.Authorize(enforcer, "timeoff", "write"), h.Cancel)

	manage := r.Group("/manage")
	{
		manage.GET("/requests", rbac.Authorize(enforcer, "manage", "read"), h.ListAll)
		manage.POST("/update-status", rbac.Authorize(enforcer, "manage", "write"), h.UpdateStatus)
	}
}
