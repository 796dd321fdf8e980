package app

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/config"
	"github.com/deke-r/senseHrm/internal/messaging/kafka/consumer"
	"github.com/deke-r/senseHrm/internal/notification"
)

const emailConsumerGroup = "hr-notification-email"

// RunConsumer delivers notification events over SMTP until the process is
// signalled. It needs no database, only config.
func RunConsumer(cfg *config.Config) error {
	sender := notification.NewSMTPSender(cfg.SMTP)
	c := consumer.NewEmailConsumer(cfg.Kafka.Broker, emailConsumerGroup, sender)
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.Run(ctx)
	zap.L().Info("consumer exited")
	return nil
}
