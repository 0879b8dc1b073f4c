package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderintake/api"
	"orderintake/cmd"
	httpin "orderintake/internal/adapters/in/http"
	"orderintake/internal/adapters/out/natsbus"
	"orderintake/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := cmd.NewLogger(os.Stdout, configs.Env, configs.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := postgres.Migrate(configs.DSN(), logger); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var msgPublisher natsbus.MsgPublisher
	if configs.NATSURL != "" {
		conn, err := natsbus.Connect(configs.NATSURL, logger)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer func() {
			_ = conn.Drain()
		}()
		msgPublisher = conn
	} else {
		logger.Warn("NATS_URL is empty, order.created events will not be published")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, msgPublisher, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	doc, err := api.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load API document: %v", err)
	}
	if err := api.RegisterSwagger(doc); err != nil {
		log.Fatalf("Failed to register swagger document: %v", err)
	}
	validator, err := httpin.NewRequestValidator(doc)
	if err != nil {
		log.Fatalf("Failed to build request validator: %v", err)
	}

	e := httpin.NewRouter(app.RouterConfig(validator))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "port", port)
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
	logger.Info("HTTP server stopped")
}
