package post

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/deke-r/senseHrm/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	posts := r.Group("/posts")
	{
		posts.GET("", rbac.Authorize(enforcer, "posts", "read"), h.Feed)
		posts.POST("", rbac.Authorize(enforcer, "posts", "write"), h.Create)
		posts.GET("/users", rbac.Authorize(enforcer, "posts", "read"), h.MentionUsers)
	}
}
