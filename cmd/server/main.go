package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aquaorders/internal/config"
	"aquaorders/internal/infrastructure/logger"
	"aquaorders/internal/infrastructure/mysql"
	"aquaorders/internal/refdata"
	"aquaorders/internal/schedule"
	"aquaorders/internal/sequence"
	"aquaorders/internal/server"
	"aquaorders/internal/workflow"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	catalog, refresher := refdata.NewModule(db, cfg.RefData.RefreshInterval, zapLogger)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalog.Reload(loadCtx); err != nil {
		cancelLoad()
		zapLogger.Fatal("loading reference data", zap.Error(err))
	}
	cancelLoad()

	if err := refresher.Start(); err != nil {
		zapLogger.Fatal("starting reference data refresher", zap.Error(err))
	}
	defer refresher.Stop()

	orderCtrl := sequence.NewModule(db, catalog, cfg, zapLogger)
	transitionCtrl := workflow.NewModule(db, catalog, cfg, zapLogger)
	scheduleCtrl := schedule.NewModule(db, zapLogger)

	router := server.NewRouter(orderCtrl, transitionCtrl, scheduleCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
