package hierarchy

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

// Source lists the active employees the tree is built from.
type Source interface {
	ListActiveForHierarchy(ctx context.Context) ([]Employee, error)
}

type Handler struct {
	source Source
	group  singleflight.Group
	logger *zap.Logger
}

func NewHandler(source Source) *Handler {
	return &Handler{
		source: source,
		logger: zap.L().Named("hierarchy.handler"),
	}
}

// Get recomputes the tree on every call; concurrent identical requests are
// collapsed into one build.
func (h *Handler) Get(c *gin.Context) {
	result, err, _ := h.group.Do("hierarchy", func() (any, error) {
		employees, err := h.source.ListActiveForHierarchy(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return Build(employees)
	})
	if err != nil {
		h.logger.Error("build hierarchy", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, "Hierarchy fetched", result)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/hierarchy", h.Get)
}
