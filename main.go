// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"equipment-booking/cmd"
	"equipment-booking/internal/data/store"
	"equipment-booking/internal/telegram"
	"equipment-booking/internal/usecase"
	"equipment-booking/internal/wire"
	"equipment-booking/pkg/database"
	"equipment-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pick the booking store. Without a database the engine runs entirely
	// in memory, fine for trying it out, everything is lost on restart.
	var st store.Store
	if config.Database.Host == "" {
		logger.Warn("DB_HOST not set, using in-memory store, bookings will not survive restarts")
		st = store.NewMemoryStore(store.DefaultCatalog)
	} else {
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")

		if err := store.Migrate(ctx, db.Pool(), logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		ps := store.NewPostgresStore(db, logger)
		if err := ps.EnsureCatalog(ctx, store.DefaultCatalog); err != nil {
			logger.Fatal("Failed to seed equipment catalog", zap.Error(err))
		}
		st = ps
	}

	// One service instance behind both the HTTP API and the Telegram bot.
	service := usecase.NewService(st, logger)

	// Wire all dependencies
	app := wire.Wiring(service, config, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return cmd.APIServer(gctx, app.Router, config.App.Port, logger)
	})

	if config.Telegram.Token != "" {
		controller, err := telegram.New(config, service, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		if err := controller.RegisterHandlers(ctx); err != nil {
			logger.Fatal("Failed to register telegram handlers", zap.Error(err))
		}

		g.Go(func() error {
			controller.Start(gctx)
			return nil
		})
	} else {
		logger.Info("TELEGRAM_BOT_TOKEN not set, telegram bot disabled")
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("Application stopped with error", zap.Error(err))
	}

	logger.Info("Application stopped")
}
