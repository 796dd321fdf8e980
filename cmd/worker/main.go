package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/app"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	a, err := app.BuildApp("")
	if err != nil {
		zap.L().Fatal("build app", zap.Error(err))
	}
	defer a.Close()

	if err := app.RunWorker(a); err != nil {
		zap.L().Fatal("outbox worker", zap.Error(err))
	}
}
