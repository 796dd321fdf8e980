package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/middleware"
	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

type markRequest struct {
	Action string `json:"action" binding:"required,oneof=check_in check_out"`
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
		logger:  zap.L().Named("attendance.handler"),
	}
}

func (h *Handler) Mark(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	var (
		record *Record
		err    error
	)
	switch req.Action {
	case "check_in":
		record, err = h.service.CheckIn(c.Request.Context(), userID)
	case "check_out":
		record, err = h.service.CheckOut(c.Request.Context(), userID)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Attendance recorded", record)
}

func (h *Handler) ListOwn(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	records, err := h.service.ListOwn(c.Request.Context(), userID, c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Attendance fetched", records)
}

func (h *Handler) Export(c *gin.Context) {
	buf, filename, err := h.service.ExportMonth(c.Request.Context(), c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
