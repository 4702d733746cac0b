package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/api"
	"github.com/Freeeeeet/music_school_scheduler/internal/app"
	"github.com/Freeeeeet/music_school_scheduler/internal/config"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller"
	"github.com/Freeeeeet/music_school_scheduler/internal/events"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
	"github.com/Freeeeeet/music_school_scheduler/internal/seed"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting music school scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("timezone", cfg.Timezone),
		zap.Bool("bot_enabled", cfg.BotEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилища и сервисы
	catalogRepo := repository.NewCatalogRepository()
	lessonRepo := repository.NewLessonRepository(logger)

	// Live-обновления для веб-клиентов
	hub := events.NewHub(logger)
	go hub.Run(ctx)

	lessonService := service.NewLessonService(lessonRepo, catalogRepo, cfg.Location(), logger).
		WithNotifier(events.NewBroadcaster(hub, logger))
	catalogService := service.NewCatalogService(catalogRepo)

	// Стартовые данные
	dataset, err := loadDataset(cfg.SeedPath)
	if err != nil {
		logger.Fatal("Failed to load seed dataset", zap.String("path", cfg.SeedPath), zap.Error(err))
	}
	if err := app.NewSeeder(catalogRepo, lessonService, logger).Run(ctx, dataset); err != nil {
		logger.Fatal("Failed to seed lessons", zap.Error(err))
	}

	// HTTP API
	handler := api.NewHandler(lessonService, catalogService, cfg.FirstWeekday(), logger).WithHub(hub)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	// Telegram бот (опционально)
	if cfg.BotEnabled() {
		if err := startBot(ctx, cfg, lessonService, catalogService, logger); err != nil {
			logger.Error("Failed to start bot", zap.Error(err))
			stop()
		}
	} else {
		logger.Info("TELEGRAM_TOKEN is empty, bot disabled")
	}

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Stopped")
}

func loadDataset(path string) (*seed.Dataset, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.Load(path)
}

// startBot поднимает бота и ежедневную рассылку; bot.Start блокирует, поэтому в горутине
func startBot(ctx context.Context, cfg *config.Config, lessons *service.LessonService, catalog *service.CatalogService, logger *zap.Logger) error {
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, lessons, catalog, cfg.FirstWeekday(), logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	scheduler := app.NewScheduler(botController, cfg.DigestAt(), cfg.Location(), logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}

	go func() {
		botController.Start(ctx)
		scheduler.Stop()
	}()

	return nil
}
