package employee

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/middleware"
	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
		logger:  zap.L().Named("employee.handler"),
	}
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Employees fetched", users)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeServiceError(c, apperror.InvalidField("id"))
		return
	}
	actorID, _ := middleware.UserID(c)

	user, err := h.service.Get(c.Request.Context(), uint(id), actorID, middleware.Role(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Employee fetched", user)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Employee created", user)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeServiceError(c, apperror.InvalidField("id"))
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	user, err := h.service.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Employee updated", user)
}

func (h *Handler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Employee options fetched", options)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	stats, err := h.service.DashboardStats(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard stats fetched", stats)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
