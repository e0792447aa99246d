package main

import (
	"context"
	"database/sql"
	"fmt"
	stdlog "log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/itchuru/news-service/internal/api"
	"github.com/itchuru/news-service/internal/cache"
	"github.com/itchuru/news-service/internal/config"
	"github.com/itchuru/news-service/internal/fetch"
	"github.com/itchuru/news-service/internal/llm"
	"github.com/itchuru/news-service/internal/logger"
	"github.com/itchuru/news-service/internal/refresh"
	"github.com/itchuru/news-service/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer log.Sync()

	store, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("cache store", zap.Error(err))
	}

	naver := fetch.NewNaverClient(cfg.NaverClientID, cfg.NaverClientSecret, cfg.MaxItems, nil)
	if cfg.NaverClientID == "" || cfg.NaverClientSecret == "" {
		log.Warn("naver credentials not set; korean news degraded")
	}
	google := fetch.NewGoogleClient(cfg.MaxItems)

	gemini := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, nil)
	if !gemini.Configured() {
		log.Warn("GEMINI_API_KEY not set; summaries and chat degraded")
	}

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	svc := service.New(store, naver, google, gemini, ttl, log)

	if cfg.RefreshCron != "" {
		runner := refresh.New(svc, log)
		if err := runner.Start(cfg.RefreshCron); err != nil {
			log.Fatal("refresh scheduler", zap.Error(err))
		}
		defer runner.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log), api.CORS())
	api.RegisterRoutes(router, api.NewHandler(svc, log))

	log.Info("listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

// buildStore selects the cache backend. Connection trouble is logged
// but not fatal: a dead cache degrades to fetch-on-every-request, it
// must not take the service down.
func buildStore(cfg config.Config, log *zap.Logger) (cache.Store, error) {
	if cfg.CacheBackend == "postgres" {
		pgURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		db, err := sql.Open("postgres", pgURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		// db might still be starting in docker
		for i := 0; i < 10; i++ {
			if err = db.Ping(); err == nil {
				break
			}
			log.Warn("waiting for db", zap.Int("attempt", i+1), zap.Error(err))
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			log.Warn("db unreachable; cache degraded to miss-on-every-read", zap.Error(err))
		} else if err := cache.RunMigrations(db, cfg.CacheTable); err != nil {
			log.Warn("cache migrations failed", zap.Error(err))
		}
		return cache.NewPgStore(db, cfg.CacheTable)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping failed; cache degraded to miss-on-every-read", zap.Error(err))
	}
	return cache.NewRedisStore(rdb), nil
}
