package rbac

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/middleware"
	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

// Authorize gates a route on the caller's role having (resource, action)
// in the policy.
func Authorize(enforcer *casbin.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := middleware.Role(c)

		ok, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			zap.L().Error("rbac enforce failed",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Internal server error", nil)
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You do not have permission to perform this action", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
