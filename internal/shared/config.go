package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	CORSOrigins   []string
	CloudinaryURL string
	CloudName     string
	CloudAPIKey   string
	SeedWorkers   int
	CacheTTL      time.Duration
}

func Load() Config {
	// .env is a local-dev convenience; absence is not an error.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MongoURI:      env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       env("MONGO_DB", "homelyhub"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisDB:       atoi("REDIS_DB", 0),
		RedisPass:     env("REDIS_PASSWORD", ""),
		JWTSecret:     env("JWT_SECRET", ""),
		CORSOrigins:   splitCSV(env("CORS_ORIGINS", "*")),
		CloudinaryURL: env("CLOUDINARY_BASE_URL", "https://api.cloudinary.com/v1_1"),
		CloudName:     env("CLOUDINARY_CLOUD_NAME", ""),
		CloudAPIKey:   env("CLOUDINARY_API_KEY", ""),
		SeedWorkers:   atoi("SEED_WORKERS", 8),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "homelyhub-dev-secret"
		log.Warn().Msg("JWT_SECRET is empty, using dev default")
	}
	if c.CloudName == "" {
		log.Warn().Msg("CLOUDINARY_CLOUD_NAME is empty, image uploads will be stored inline")
	}
	return c
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
