package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"restaurant-panel/internal/api"
	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/cache"
	"restaurant-panel/internal/commands"
	"restaurant-panel/internal/config"
	"restaurant-panel/internal/kafka"
	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/qr"
	"restaurant-panel/internal/sse"
	"restaurant-panel/internal/store"
	"restaurant-panel/internal/syncer"
)

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting staff dashboard initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	if cfg.Firebase.ProjectID == "" {
		log.Fatal("CONFIG", "FIREBASE_PROJECT_ID not set")
	}
	if cfg.Firebase.WebAPIKey == "" {
		log.Fatal("CONFIG", "FIREBASE_WEB_API_KEY not set")
	}

	ctx := context.Background()

	log.Info("APP", "Verifying backend connections")
	st, err := store.New(ctx, cfg.Firebase, log)
	if err != nil {
		log.Fatal("STORE", fmt.Sprintf("Failed to connect to document store: %v", err))
	}
	defer st.Close()

	authClient, err := auth.NewFirebaseAuth(ctx, cfg.Firebase)
	if err != nil {
		log.Fatal("AUTH", fmt.Sprintf("Failed to initialize auth client: %v", err))
	}

	redisClient, err := cache.InitializeRedis(cfg.Redis.Addr, log)
	if err != nil {
		log.Fatal("REDIS", fmt.Sprintf("Redis connection error: %v", err))
	}
	defer redisClient.Close()

	profiles := cache.NewProfileCache(redisClient, st, cfg.Redis.ProfileCacheTTL, log)

	var publisher commands.Publisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()

		requiredTopics := []string{
			cfg.Kafka.Topics.OrderCompleted,
			cfg.Kafka.Topics.ReservationCompleted,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
		publisher = producer
	} else {
		log.Info("KAFKA", "Event publishing disabled")
	}

	commandService := commands.NewService(st, publisher, log)

	orders := syncer.NewOrderSynchronizer(st, profiles, log)
	reservations := syncer.NewReservationSynchronizer(
		st,
		profiles,
		commandService.AutoCompleter(),
		cfg.Sync.AutoCompleteReservations,
		cfg.Sync.AutoCompleteAfter,
		log,
	)
	users := syncer.NewUserSynchronizer(st, profiles, log)

	sessions := auth.NewRegistry(authClient, log)
	resolver := auth.NewResolver(profiles, sessions, log)

	handler := &api.Handler{
		Logger:     log,
		Sessions:   sessions,
		Resolver:   resolver,
		Commands:   commandService,
		Store:      st,
		QR:         qr.NewQRGenerator(cfg.QRSecret),
		WebAPIKey:  cfg.Firebase.WebAPIKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},

		Orders: sse.NewBroadcaster(store.CollectionOrders, func(emit func(interface{}), fail func(error)) func() {
			return orders.Subscribe(func(list []models.Order) { emit(list) }, fail)
		}, log),
		Reservations: sse.NewBroadcaster(store.CollectionReservations, func(emit func(interface{}), fail func(error)) func() {
			return reservations.Subscribe(func(list []models.Reservation) { emit(list) }, fail)
		}, log),
		Users: sse.NewBroadcaster(store.CollectionUsers, func(emit func(interface{}), fail func(error)) func() {
			return users.Subscribe(func(list []models.UserProfile) { emit(list) }, fail)
		}, log),
	}

	log.Info("HTTP", "Setting up router and middleware")
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.Routes(cfg.Firebase.ProjectID),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Staff dashboard running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Staff dashboard shutdown complete")
	}
}
