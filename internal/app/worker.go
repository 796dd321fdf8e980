package app

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/messaging/kafka"
	"github.com/deke-r/senseHrm/internal/messaging/kafka/producer"
	"github.com/deke-r/senseHrm/internal/shared/connection"
)

// RunWorker drains the outbox onto Kafka until the process is signalled.
func RunWorker(a *App) error {
	writer, err := connection.ConnectKafkaWithRetry(a.Config.Kafka.Broker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(a.SQLDB)
	worker := producer.NewOutboxWorker(outboxRepo, producer.NewPublisher(writer))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.Run(ctx)
	zap.L().Info("worker exited")
	return nil
}
