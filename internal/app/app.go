package app

import (
	"database/sql"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/deke-r/senseHrm/internal/config"
	"github.com/deke-r/senseHrm/internal/migrations"
	"github.com/deke-r/senseHrm/internal/rbac"
	"github.com/deke-r/senseHrm/internal/shared/connection"
)

// App holds the process-wide resources every entrypoint shares.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	SQLDB    *sql.DB
	Redis    *redis.Client
	Enforcer *casbin.Enforcer
}

// BuildApp loads config, connects the backing stores and applies pending
// migrations.
func BuildApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	db, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql db: %w", err)
	}

	if err := migrations.Run(sqlDB); err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		return nil, err
	}

	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		DB:       db,
		SQLDB:    sqlDB,
		Redis:    rdb,
		Enforcer: enforcer,
	}, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.SQLDB != nil {
		a.SQLDB.Close()
	}
}
