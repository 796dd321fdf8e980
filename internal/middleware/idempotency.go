package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"

	idempotencyTTL      = 24 * time.Hour
	idempotencyLockTTL  = 30 * time.Second
	idempotencyInFlight = "__in_flight__"
)

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key and
// rejects a key whose first request is still in flight. Keys are optional;
// requests without one pass straight through.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	logger := zap.L().Named("middleware.idempotency")

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		userID, _ := UserID(c)
		redisKey := "idempotency:" + c.Request.Method + ":" + c.FullPath() + ":" + key
		if userID != 0 {
			redisKey = redisKey + ":" + itoa(userID)
		}

		ctx := c.Request.Context()

		ok, err := rdb.SetNX(ctx, redisKey, idempotencyInFlight, idempotencyLockTTL).Result()
		if err != nil {
			// Redis being down must not block writes.
			logger.Warn("idempotency check skipped", zap.Error(err))
			c.Next()
			return
		}

		if !ok {
			cached, err := rdb.Get(ctx, redisKey).Result()
			if err == nil && cached != idempotencyInFlight {
				c.Header("Content-Type", "application/json")
				c.Header("X-Idempotency-Replay", "true")
				c.String(http.StatusOK, cached)
				c.Abort()
				return
			}
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "Request with this idempotency key is already in progress", nil)
			c.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		if capture.Status() >= 200 && capture.Status() < 300 {
			if err := rdb.Set(ctx, redisKey, capture.buf.String(), idempotencyTTL).Err(); err != nil {
				logger.Warn("idempotency store failed", zap.Error(err))
			}
		} else {
			// Let the client retry a failed request with the same key.
			if err := rdb.Del(ctx, redisKey).Err(); err != nil {
				logger.Warn("idempotency release failed", zap.Error(err))
			}
		}
	}
}

func itoa(v uint) string {
	if v == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return string(b[i:])
}
