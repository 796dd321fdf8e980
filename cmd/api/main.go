package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/app"
	"github.com/deke-r/senseHrm/internal/bootstrap"
	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	a, err := app.BuildApp("")
	if err != nil {
		zap.L().Fatal("build app", zap.Error(err))
	}
	defer a.Close()

	router := app.BuildRouter(a)
	if err := bootstrap.StartHTTPServer(router, a.Config.Server.Port); err != nil {
		zap.L().Fatal("http server", zap.Error(err))
	}
}
