package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/app"
	"github.com/deke-r/senseHrm/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load("")
	if err != nil {
		zap.L().Fatal("load config", zap.Error(err))
	}

	if err := app.RunConsumer(cfg); err != nil {
		zap.L().Fatal("email consumer", zap.Error(err))
	}
}
