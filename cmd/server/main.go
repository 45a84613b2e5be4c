package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/plume-labs/plume/config"
	"github.com/plume-labs/plume/internal/api"
	"github.com/plume-labs/plume/internal/api/handler"
	"github.com/plume-labs/plume/internal/cache"
	"github.com/plume-labs/plume/internal/repository"
	"github.com/plume-labs/plume/internal/service"
	"github.com/plume-labs/plume/internal/storage"
	"github.com/plume-labs/plume/pkg/clock"
	"github.com/plume-labs/plume/pkg/database"
	"github.com/plume-labs/plume/pkg/logger"
	"github.com/plume-labs/plume/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())

	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing := must(tracing.Init(context.Background(), "plume", cfg.Tracing.Endpoint))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db := must(database.InitDB(cfg))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, feed cache disabled", zap.Error(err))
	}

	var blobs storage.BlobStore
	if minioStore, err := storage.NewMinioStore(cfg.Minio); err == nil {
		if err := minioStore.EnsureBucket(context.Background()); err != nil {
			logger.Warn("minio bucket check failed", zap.Error(err))
		}
		blobs = minioStore
	} else {
		logger.Warn("minio unreachable, storing images in memory", zap.Error(err))
		blobs = storage.NewMemoryStore()
	}

	clk := clock.NewRealClock()

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	feedCache := cache.NewFeedCache(rdb, cfg.Feed.CacheTTL)

	feedSvc := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, feedCache, blobs, cfg.Feed.PageSize)
	postSvc := service.NewPostService(postRepo, groupRepo, userRepo, commentRepo, blobs, clk)
	relSvc := service.NewRelationshipService(followRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clk)

	h := handler.New(feedSvc, postSvc, relSvc, authSvc)
	r := api.NewRouter(h, authSvc)

	logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
