package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"homelyhub/internal/adapters/cloudinary"
	server "homelyhub/internal/adapters/http_server"
	"homelyhub/internal/adapters/observability"
	redisad "homelyhub/internal/adapters/redis"
	"homelyhub/internal/app"
	"homelyhub/internal/domain"
	"homelyhub/internal/shared"
	mongostore "homelyhub/internal/storage/mongo"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo.Connect failed")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}
	log.Info().Str("db", cfg.MongoDB).Msg("database connection ok")

	store := mongostore.New(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var images domain.ImageStore
	if cfg.CloudName != "" {
		cl, err := cloudinary.New(cfg.CloudinaryURL, cfg.CloudName, cfg.CloudAPIKey, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("cloudinary client failed")
		}
		images = cl
	}

	handlers := &server.Handlers{
		Properties: app.NewPropertyService(store, cache, cfg.CacheTTL),
		Bookings:   app.NewBookingService(store, store, store),
		Reviews:    app.NewReviewService(store, store, store, cache),
		Uploads:    app.NewUploadService(images),
		Users:      app.NewUserService(store),
	}

	// http
	srv := server.New(cfg.CORSOrigins)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers, server.NewTokenVerifier(cfg.JWTSecret))

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
