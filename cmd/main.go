package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/logging"
	"github.com/JohnsonOduri/Ur-OrbIIIT/observability"
	"github.com/JohnsonOduri/Ur-OrbIIIT/routes"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.AppEnv)
	if err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	// fail fast if the DB is not reachable
	database.Connect(cfg, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	logger.Info("server listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
