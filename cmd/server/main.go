package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/internal/api"
	"storefront-service/internal/backend"
	"storefront-service/internal/broker"
	"storefront-service/internal/notify"
	"storefront-service/internal/service"
	"storefront-service/internal/session"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront service")

	tp, err := util.InitTracer("storefront-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	sessions, err := session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer sessions.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	notifications := notify.NewRecorder()
	notifier := notify.Fanout{notify.NewZapNotifier(logger), notifications}

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	catalogService := service.NewCatalogService(client, notifier, cfg.Search.DebounceWindow)
	cartService := service.NewCartService(client, catalogService, sessions, notifier)
	addressService := service.NewAddressService(client, sessions, notifier)
	checkoutService := service.NewCheckoutService(client, cartService, addressService, sessions, eventPublisher, notifier)
	authService := service.NewAuthService(client, sessions, eventPublisher, notifier)

	// Warm the catalog and the cart so the first request sees data.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogService.Refresh(warmCtx); err != nil {
		log.Printf("Initial catalog fetch failed: %v", err)
	}
	if err := cartService.Refresh(warmCtx); err != nil {
		log.Printf("Initial cart fetch failed: %v", err)
	}
	warmCancel()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(catalogService, cartService, addressService, checkoutService, authService, notifications)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
