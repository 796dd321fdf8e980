package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/deke-r/senseHrm/internal/shared/contextutil"
)

const RequestIDHeader = "X-Request-ID"

// RequestID accepts a caller-supplied request id or mints one, echoes it on
// the response and propagates it through the request context so service and
// outbox logs can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)

		c.Next()
	}
}
