package post

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deke-r/senseHrm/internal/employee"
	"github.com/deke-r/senseHrm/internal/middleware"
	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

// MentionSource lists the users offered by the @mention picker.
type MentionSource interface {
	Options(ctx context.Context) ([]employee.Option, error)
}

type Handler struct {
	service  Service
	mentions MentionSource
}

func NewHandler(service Service, mentions MentionSource) *Handler {
	return &Handler{service: service, mentions: mentions}
}

func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	post, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Post created", post)
}

func (h *Handler) Feed(c *gin.Context) {
	items, err := h.service.Feed(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Feed fetched", items)
}

func (h *Handler) MentionUsers(c *gin.Context) {
	options, err := h.mentions.Options(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Users fetched", options)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
