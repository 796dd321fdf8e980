package announcement

import (
	"net/http"
	"strconv"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/deke-r/senseHrm/internal/middleware"
	"github.com/deke-r/senseHrm/internal/rbac"
	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Announcements fetched", list)
}

func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	a, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Announcement created", a)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeServiceError(c, apperror.InvalidField("id"))
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	a, err := h.service.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Announcement updated", a)
}

func (h *Handler) Toggle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeServiceError(c, apperror.InvalidField("id"))
		return
	}

	a, err := h.service.Toggle(c.Request.Context(), uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Announcement updated", a)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	announcements := r.Group("/announcements")
	{
		announcements.GET("", rbac.Authorize(enforcer, "announcements", "read"), h.List)
		announcements.POST("", rbac.Authorize(enforcer, "announcements", "write"), h.Create)
		announcements.PUT("/:id", rbac.Authorize(enforcer, "announcements", "write"), h.Update)
		announcements.PATCH("/:id/toggle", rbac.Authorize(enforcer, "announcements", "write"), h.Toggle)
	}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
