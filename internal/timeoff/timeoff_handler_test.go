package timeoff_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/deke-r/senseHrm/internal/middleware"
	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
	"github.com/deke-r/senseHrm/internal/timeoff"
	timeofferrors "github.com/deke-r/senseHrm/internal/timeoff/errors"
)

type fakeService struct {
	ApplyFn        func(ctx context.Context, ownerID uint, input timeoff.ApplyInput) (uint, error)
	CancelFn       func(ctx context.Context, ownerID uint, kind timeoff.Kind, id uint, reason string) error
	HistoryFn      func(ctx context.Context, ownerID uint) ([]timeoff.HistoryEntry, error)
	ListAllFn      func(ctx context.Context) ([]timeoff.QueueEntry, error)
	UpdateStatusFn func(ctx context.Context, actorID uint, kind timeoff.Kind, id uint, status, reason string) error
}

func (f *fakeService) Apply(ctx context.Context, ownerID uint, input timeoff.ApplyInput) (uint, error) {
	return f.ApplyFn(ctx, ownerID, input)
}
func (f *fakeService) Cancel(ctx context.Context, ownerID uint, kind timeoff.Kind, id uint, reason string) error {
	return f.CancelFn(ctx, ownerID, kind, id, reason)
}
func (f *fakeService) History(ctx context.Context, ownerID uint) ([]timeoff.HistoryEntry, error) {
	return f.HistoryFn(ctx, ownerID)
}
func (f *fakeService) ListAll(ctx context.Context) ([]timeoff.QueueEntry, error) {
	return f.ListAllFn(ctx)
}
func (f *fakeService) UpdateStatus(ctx context.Context, actorID uint, kind timeoff.Kind, id uint, status, reason string) error {
	return f.UpdateStatusFn(ctx, actorID, kind, id, status, reason)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body any, userID uint) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		c.Set(middleware.CtxUserID, userID)
	}

	handler(c)

	var env response.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestApplyLeaveHandlerSuccess(t *testing.T) {
	svc := &fakeService{
		ApplyFn: func(ctx context.Context, ownerID uint, input timeoff.ApplyInput) (uint, error) {
			assert.Equal(t, uint(7), ownerID)
			assert.Equal(t, timeoff.KindLeave, input.Kind)
			assert.Equal(t, "Casual Leave", input.LeaveCategory)
			return 42, nil
		},
	}
	h := timeoff.NewHandler(svc)

	w, env := performJSON(t, h.ApplyLeave, http.MethodPost, "/leave/apply", gin.H{
		"leave_category": "Casual Leave",
		"leave_type":     "Full Day",
		"from_date":      "2025-01-10",
		"to_date":        "2025-01-12",
		"total_days":     3,
		"note":           "family event",
	}, 7)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Request submitted successfully", env.Message)
}

func TestApplyLeaveHandlerMissingNote(t *testing.T) {
	h := timeoff.NewHandler(&fakeService{})

	w, env := performJSON(t, h.ApplyLeave, http.MethodPost, "/leave/apply", gin.H{
		"leave_category": "Casual Leave",
		"leave_type":     "Full Day",
		"from_date":      "2025-01-10",
		"to_date":        "2025-01-12",
		"total_days":     3,
	}, 7)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
}

func TestCancelHandlerUnknownType(t *testing.T) {
	h := timeoff.NewHandler(&fakeService{})

	w, env := performJSON(t, h.Cancel, http.MethodPost, "/leave/cancel", gin.H{
		"id":     42,
		"type":   "Sabbatical",
		"reason": "n/a",
	}, 7)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
}

func TestCancelHandlerMapsInvalidState(t *testing.T) {
	svc := &fakeService{
		CancelFn: func(ctx context.Context, ownerID uint, kind timeoff.Kind, id uint, reason string) error {
			return timeofferrors.ErrNotPendingCancel
		},
	}
	h := timeoff.NewHandler(svc)

	w, env := performJSON(t, h.Cancel, http.MethodPost, "/leave/cancel", gin.H{
		"id":     42,
		"type":   "Leave",
		"reason": "plans changed",
	}, 7)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidState, env.Error.Code)
	assert.Equal(t, "Only pending requests can be cancelled", env.Message)
}

func TestCancelHandlerMapsNotFound(t *testing.T) {
	svc := &fakeService{
		CancelFn: func(ctx context.Context, ownerID uint, kind timeoff.Kind, id uint, reason string) error {
			return timeofferrors.ErrRequestNotFound
		},
	}
	h := timeoff.NewHandler(svc)

	w, env := performJSON(t, h.Cancel, http.MethodPost, "/leave/cancel", gin.H{
		"id":     42,
		"type":   "Work From Home",
		"reason": "plans changed",
	}, 7)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
}

func TestHistoryHandlerRequiresIdentity(t *testing.T) {
	h := timeoff.NewHandler(&fakeService{})

	w, env := performJSON(t, h.History, http.MethodGet, "/leave/history", nil, 0)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}

func TestUpdateStatusHandlerRejectsUnknownStatus(t *testing.T) {
	h := timeoff.NewHandler(&fakeService{})

	w, _ := performJSON(t, h.UpdateStatus, http.MethodPost, "/manage/update-status", gin.H{
		"id":     42,
		"type":   "Leave",
		"status": "escalated",
	}, 9)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusHandlerSuccess(t *testing.T) {
	var gotStatus string
	svc := &fakeService{
		UpdateStatusFn: func(ctx context.Context, actorID uint, kind timeoff.Kind, id uint, status, reason string) error {
			gotStatus = status
			return nil
		},
	}
	h := timeoff.NewHandler(svc)

	w, env := performJSON(t, h.UpdateStatus, http.MethodPost, "/manage/update-status", gin.H{
		"id":     42,
		"type":   "Partial Day",
		"status": "rejected",
		"reason": "short notice",
	}, 9)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "rejected", gotStatus)
}
