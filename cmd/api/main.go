package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/ibplan-go-api/internal/config"
	"github.com/noah-isme/ibplan-go-api/internal/database"
	"github.com/noah-isme/ibplan-go-api/internal/handler"
	"github.com/noah-isme/ibplan-go-api/internal/middleware"
	"github.com/noah-isme/ibplan-go-api/internal/models"
	"github.com/noah-isme/ibplan-go-api/internal/repository"
	"github.com/noah-isme/ibplan-go-api/internal/router"
	"github.com/noah-isme/ibplan-go-api/internal/service"
	"github.com/noah-isme/ibplan-go-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	kv := store.NewKV(redisClient, logger)

	directory, err := buildDirectory(cfg)
	if err != nil {
		log.Fatalf("failed to build user directory: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	sessionService := service.NewSessionService(directory, kv, cfg.JWTSecret, cfg.TokenTTL, logger)
	if err := sessionService.Rehydrate(context.Background()); err != nil {
		log.Fatalf("failed to rehydrate session: %v", err)
	}
	documentService := service.NewDocumentService(kv, logger)
	themeService := service.NewThemeService(kv, logger)

	authHandler := handler.NewAuthHandler(sessionService, validate, logger)
	catalogHandler := handler.NewCatalogHandler(logger)
	paperHandler := handler.NewPaperHandler(documentService, validate, logger)
	themeHandler := handler.NewThemeHandler(themeService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app)
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    authHandler,
		CatalogHandler: catalogHandler,
		PaperHandler:   paperHandler,
		ThemeHandler:   themeHandler,
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildDirectory wires the persistent directory when a database URL is
// configured, seeding it with the demo accounts on first run, and falls
// back to the in-memory demo table otherwise.
func buildDirectory(cfg config.Config) (repository.UserDirectory, error) {
	if cfg.DirectoryDatabaseURL == "" {
		return repository.NewDemoDirectory(), nil
	}

	db, err := database.ConnectPostgres(cfg.DirectoryDatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.DirectoryUser{}); err != nil {
		return nil, err
	}
	if err := seedDemoUsers(db); err != nil {
		return nil, err
	}
	return repository.NewGormDirectory(db), nil
}

func seedDemoUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.DirectoryUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	users := repository.DemoUsers()
	return db.Create(&users).Error
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
