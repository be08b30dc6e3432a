package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	"github.com/xiebiao/posbuzz/internal/domain/sale"
	"github.com/xiebiao/posbuzz/internal/infrastructure/config"
	"github.com/xiebiao/posbuzz/internal/infrastructure/messaging"
	"github.com/xiebiao/posbuzz/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/posbuzz/internal/infrastructure/persistence/redis"
	api "github.com/xiebiao/posbuzz/internal/interface/http"
	"github.com/xiebiao/posbuzz/internal/interface/http/middleware"
	"github.com/xiebiao/posbuzz/pkg/jwt"
	"github.com/xiebiao/posbuzz/pkg/mq"
)

// 需要从Config中提取参数或返回清理函数的依赖，main.go手动组装与wire.go共用

func provideDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config, logger *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideLoyaltyProgram(cfg *config.Config) (*loyalty.Program, error) {
	return cfg.Loyalty.Program()
}

func provideCatalogCache(client *goredis.Client, cfg *config.Config, logger *zap.Logger) *redis.CatalogCache {
	return redis.NewCatalogCache(client, redis.CatalogCacheOptions{
		TTL:             cfg.Cache.ProductTTL,
		BreakerFailures: cfg.Cache.BreakerFailures,
		BreakerTimeout:  cfg.Cache.BreakerTimeout,
	}, logger)
}

// provideEventPublisher 启用消息队列时发布到RabbitMQ，否则只记日志
func provideEventPublisher(cfg *config.Config, logger *zap.Logger) (sale.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NewNopPublisher(logger), func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic", logger)
	if err != nil {
		return nil, nil, err
	}
	return messaging.NewSalePublisher(publisher), func() { _ = publisher.Close() }, nil
}

func provideRouter(cfg *config.Config, logger *zap.Logger, handlers api.Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	return api.NewRouter(api.RouterOptions{
		Mode:          cfg.Server.Mode,
		EnableSwagger: cfg.Server.Mode != gin.ReleaseMode,
	}, logger, handlers, auth)
}

func provideServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
