package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/deke-r/senseHrm/internal/middleware"
)

func buildRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	handlerCalls := 0

	r := gin.New()
	r.Use(middleware.Idempotency(rdb))
	r.POST("/leave/apply", func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r, mock, &handlerCalls
}

func TestIdempotencySkipsRequestsWithoutKey(t *testing.T) {
	r, mock, calls := buildRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave/apply", strings.NewReader("{}"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyStoresSuccessfulResponse(t *testing.T) {
	r, mock, calls := buildRouter(t)

	key := "idempotency:POST:/leave/apply:abc-1"
	mock.ExpectSetNX(key, "__in_flight__", 30*time.Second).SetVal(true)
	mock.ExpectSet(key, `{"success":true}`, 24*time.Hour).SetVal("OK")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave/apply", strings.NewReader("{}"))
	req.Header.Set(middleware.IdempotencyKeyHeader, "abc-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	r, mock, calls := buildRouter(t)

	key := "idempotency:POST:/leave/apply:abc-1"
	mock.ExpectSetNX(key, "__in_flight__", 30*time.Second).SetVal(false)
	mock.ExpectGet(key).SetVal(`{"success":true}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave/apply", strings.NewReader("{}"))
	req.Header.Set(middleware.IdempotencyKeyHeader, "abc-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replay"))
	assert.Equal(t, 0, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRejectsInFlightDuplicate(t *testing.T) {
	r, mock, calls := buildRouter(t)

	key := "idempotency:POST:/leave/apply:abc-1"
	mock.ExpectSetNX(key, "__in_flight__", 30*time.Second).SetVal(false)
	mock.ExpectGet(key).SetVal("__in_flight__")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave/apply", strings.NewReader("{}"))
	req.Header.Set(middleware.IdempotencyKeyHeader, "abc-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
