package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/giovanabeautify/salon-scheduler/internal/config"
	dbpkg "github.com/giovanabeautify/salon-scheduler/internal/db"
	"github.com/giovanabeautify/salon-scheduler/internal/gallery"
	"github.com/giovanabeautify/salon-scheduler/internal/logging"
	"github.com/giovanabeautify/salon-scheduler/internal/routes"
)

func main() {

	_ = godotenv.Load()
	logging.Init()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := newRedis(cfg)
	uploader := newUploader(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, rdb, uploader)

	logging.Log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logging.Log.Fatal("failed to start server", zap.Error(err))
	}
}

// newRedis conecta no redis quando configurado. Sem REDIS_URL a API roda
// em instância única, só com fan-out local.
func newRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logging.Log.Fatal("invalid REDIS_URL", zap.Error(err))
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logging.Log.Fatal("failed to connect to redis", zap.Error(err))
	}

	return rdb
}

// newUploader liga a galeria quando o bucket está configurado.
func newUploader(cfg *config.Config) *gallery.Uploader {
	uploader, err := gallery.NewUploader(context.Background(), cfg)
	if err != nil {
		logging.Log.Fatal("failed to init gallery uploader", zap.Error(err))
	}
	return uploader
}
