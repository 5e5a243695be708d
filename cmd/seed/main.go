package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/semaphore"

	"homelyhub/internal/adapters/observability"
	"homelyhub/internal/domain"
	"homelyhub/internal/shared"
	mongostore "homelyhub/internal/storage/mongo"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("db", cfg.MongoDB).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo.Connect failed")
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}
	log.Info().Msg("db ping ok")

	store := mongostore.New(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// users go in serially; properties need the host ids
	var hostIDs []string
	for _, u := range shared.SeedUsers {
		u.CreatedAt = time.Now().UTC()
		id, err := store.CreateUser(ctx, u)
		if err != nil {
			log.Fatal().Str("email", u.Email).Err(err).Msg("seed user failed")
		}
		if u.Role == domain.RoleHost {
			hostIDs = append(hostIDs, id)
		}
		log.Info().Str("email", u.Email).Str("id", id).Msg("user seeded")
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, p := range shared.SeedProperties(hostIDs) {
		p := p

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			p.ApplyDefaults()
			p.CreatedAt = time.Now().UTC()
			if err := p.Validate(); err != nil {
				log.Warn().Str("title", p.Title).Err(err).Msg("fixture invalid")
				return
			}
			id, err := store.CreateProperty(ctx, p)
			if err != nil {
				log.Warn().Str("title", p.Title).Err(err).Msg("seed property failed")
				return
			}
			log.Info().Str("title", p.Title).Str("id", id).Msg("property seeded")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
