package timeoff

import (
	"net/http"

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
		logger:  zap.L().Named("timeoff.handler"),
	}
}

func (h *Handler) ApplyLeave(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.apply(c, req.ToInput)
}

func (h *Handler) ApplyWFH(c *gin.Context) {
	var req ApplyWFHRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.apply(c, req.ToInput)
}

func (h *Handler) ApplyPartialDay(c *gin.Context) {
	var req ApplyPartialDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.apply(c, req.ToInput)
}

func (h *Handler) apply(c *gin.Context, toInput func() (ApplyInput, error)) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	input, err := toInput()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	id, err := h.service.Apply(c.Request.Context(), userID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Request submitted successfully", gin.H{"id": id})
}

func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	kind, err := ParseKind(req.Type)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, kind, req.ID, req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Request cancelled successfully", nil)
}

func (h *Handler) History(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	entries, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Request history fetched", entries)
}

func (h *Handler) ListAll(c *gin.Context) {
	entries, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Requests fetched", entries)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	kind, err := ParseKind(req.Type)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), actorID, kind, req.ID, req.Status, req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Request status updated", nil)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
