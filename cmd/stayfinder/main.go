package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayfinder/internal/app/events"
	authsvc "stayfinder/internal/app/services/auth"
	bookingsvc "stayfinder/internal/app/services/booking"
	listingsvc "stayfinder/internal/app/services/listings"
	domainbooking "stayfinder/internal/domain/booking"
	domainlistings "stayfinder/internal/domain/listings"
	domainuser "stayfinder/internal/domain/user"
	"stayfinder/internal/infra/broker/kafka"
	"stayfinder/internal/infra/config"
	mongodb "stayfinder/internal/infra/db/mongo"
	ginserver "stayfinder/internal/infra/http/gin"
	"stayfinder/internal/infra/obs"
	"stayfinder/internal/infra/security"
	"stayfinder/internal/infra/storage/memory"
	"stayfinder/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	repos, ready, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	emitter := buildEmitter(cfg, logger)
	photos := buildPhotoStorage(cfg, logger)

	tokens := security.TokenManager{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL}
	authService := &authsvc.Service{
		Users:     repos.users,
		Passwords: security.BcryptHasher{Cost: cfg.BcryptCost},
		Tokens:    tokens,
		Logger:    logger,
	}
	listingService := &listingsvc.Service{
		Listings: repos.listings,
		Photos:   photos,
		Events:   emitter,
		Logger:   logger,
	}
	bookingService := &bookingsvc.Service{
		Bookings: repos.bookings,
		Listings: repos.listings,
		Events:   emitter,
		Logger:   logger,
	}

	respond := ginserver.ErrorResponder{Logger: logger, Verbose: !cfg.IsProduction()}
	authMW := ginserver.AuthMiddleware{Tokens: tokens, Users: repos.users, Logger: logger}
	listingHandler := ginserver.ListingHandler{Service: listingService, Respond: respond}
	handlers := ginserver.Handlers{
		Auth:        ginserver.AuthHandler{Service: authService, Respond: respond},
		Listing:     listingHandler,
		Booking:     ginserver.BookingHandler{Service: bookingService, Respond: respond},
		Admin:       ginserver.AdminHandler{Users: repos.users, Listing: listingHandler, Respond: respond},
		RequireAuth: authMW.RequireAuth(),
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type repositories struct {
	users    domainuser.Repository
	listings domainlistings.Repository
	bookings domainbooking.Repository
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, func() error, error) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, using in-memory store")
		return repositories{
			users:    memory.NewUserRepository(),
			listings: memory.NewListingRepository(),
			bookings: memory.NewBookingRepository(),
		}, nil, nil
	}

	client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return repositories{}, nil, err
	}
	users := mongodb.NewUserRepository(client.DB)
	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := users.EnsureIndexes(indexCtx); err != nil {
		return repositories{}, nil, err
	}
	logger.Info("mongo connected", "database", cfg.MongoDB)
	ready := func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}
	return repositories{
		users:    users,
		listings: mongodb.NewListingRepository(client.DB),
		bookings: mongodb.NewBookingRepository(client.DB),
	}, ready, nil
}

func buildEmitter(cfg config.Config, logger *slog.Logger) events.Emitter {
	emitter := events.Emitter{
		Publisher:   events.NoopPublisher{},
		TopicPrefix: cfg.KafkaTopicPrefix,
		Logger:      logger,
	}
	if len(cfg.KafkaBrokers) == 0 {
		return emitter
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("kafka unavailable, events will be dropped", "error", err)
		return emitter
	}
	logger.Info("kafka producer ready", "brokers", cfg.KafkaBrokers)
	emitter.Publisher = producer
	return emitter
}

func buildPhotoStorage(cfg config.Config, logger *slog.Logger) s3.Uploader {
	if cfg.S3Endpoint == "" {
		return s3.NoopUploader{}
	}
	client, err := s3.NewClient(s3.Options{
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicEndpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		UseSSL:        cfg.S3UseSSL,
		Logger:        logger,
	})
	if err != nil {
		logger.Warn("photo storage unavailable", "error", err)
		return s3.NoopUploader{}
	}
	return client
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
