package main

import (
	"log"
	"net/http"

	"shopease-server/config"
	"shopease-server/handlers"
	"shopease-server/services"
	"shopease-server/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	// Open the document store (the browser-local storage of the original
	// storefront lives here now)
	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}

	// Wire stores and services once; everything downstream gets them by
	// reference
	api := services.NewDemoAPIClient(cfg.DemoAPIURL, logger)
	sessions := services.NewSessionStore(api, store, logger)
	cart := services.NewCartStore(store, logger)
	payments := &services.SimulatedProcessor{Delay: cfg.PaymentDelay}
	checkout := services.NewCheckoutFlow(cart, payments, logger)
	notifier := services.NewNotifier(logger)

	env := &handlers.Env{
		Sessions: sessions,
		Cart:     cart,
		Checkout: checkout,
		Catalog:  api,
		Notifier: notifier,
		Logger:   logger,
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.Router(env)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Info("starting ShopEase server",
		zap.String("port", cfg.ServerPort),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.String("demo_api", cfg.DemoAPIURL),
	)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.ServerPort, corsHandler.Handler(router)); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(environment string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	return logger
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageDriver == "redis" {
		return storage.NewRedisStore(cfg.RedisAddr)
	}
	return storage.NewFileStore(cfg.StoragePath)
}
