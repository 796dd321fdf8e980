package holiday

import (
	"net/http"
	"strconv"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

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
	response.Success(c, http.StatusOK, "Holidays fetched", list)
}

func (h *Handler) Calendar(c *gin.Context) {
	feed, err := h.service.Calendar(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="holidays.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	holiday, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Holiday created", holiday)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeServiceError(c, apperror.InvalidField("id"))
		return
	}

	var req UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	holiday, err := h.service.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Holiday updated", holiday)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeServiceError(c, apperror.InvalidField("id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Holiday deleted", nil)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	holidays := r.Group("/holidays")
	{
		holidays.GET("", rbac.Authorize(enforcer, "holidays", "read"), h.List)
		holidays.GET("/calendar.ics", rbac.Authorize(enforcer, "holidays", "read"), h.Calendar)
		holidays.POST("", rbac.Authorize(enforcer, "holidays", "write"), h.Create)
		holidays.PATCH("/:id", rbac.Authorize(enforcer, "holidays", "write"), h.Update)
		holidays.DELETE("/:id", rbac.Authorize(enforcer, "holidays", "write"), h.Delete)
	}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
