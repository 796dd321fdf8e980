package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/shared/contextutil"
)

// AuditLog is one request-level audit record.
type AuditLog struct {
	RequestID string
	ActorID   uint
	Method    string
	Path      string
	Status    int
	ClientIP  string
	Duration  time.Duration
}

type AuditLogger interface {
	Log(entry AuditLog)
}

// ZapAuditLogger writes audit records through the global zap logger.
type ZapAuditLogger struct{}

func (ZapAuditLogger) Log(entry AuditLog) {
	zap.L().Named("audit").Info("request",
		zap.String("request_id", entry.RequestID),
		zap.Uint("actor_id", entry.ActorID),
		zap.String("method", entry.Method),
		zap.String("path", entry.Path),
		zap.Int("status", entry.Status),
		zap.String("client_ip", entry.ClientIP),
		zap.Duration("duration", entry.Duration),
	)
}

// Audit records every completed request.
func Audit(logger AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		logger.Log(AuditLog{
			RequestID: contextutil.GetRequestID(ctx),
			ActorID:   contextutil.GetActorID(ctx),
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Status:    c.Writer.Status(),
			ClientIP:  c.ClientIP(),
			Duration:  time.Since(start),
		})
	}
}

// StartHTTPServer serves the engine until SIGINT/SIGTERM, then drains
// in-flight requests.
func StartHTTPServer(engine *gin.Engine, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
