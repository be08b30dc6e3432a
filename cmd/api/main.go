// Command posbuzz-api 收银系统HTTP服务
//
// @title                      PosBuzz API
// @version                    1.0
// @description                门店收银：商品目录、开单、会员积分、促销与经营统计
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	appanalytics "github.com/xiebiao/posbuzz/internal/application/analytics"
	appcustomer "github.com/xiebiao/posbuzz/internal/application/customer"
	appproduct "github.com/xiebiao/posbuzz/internal/application/product"
	appsale "github.com/xiebiao/posbuzz/internal/application/sale"
	appuser "github.com/xiebiao/posbuzz/internal/application/user"
	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/domain/product"
	"github.com/xiebiao/posbuzz/internal/domain/promotion"
	"github.com/xiebiao/posbuzz/internal/domain/supplier"
	"github.com/xiebiao/posbuzz/internal/domain/user"
	"github.com/xiebiao/posbuzz/internal/infrastructure/config"
	"github.com/xiebiao/posbuzz/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/posbuzz/internal/infrastructure/persistence/redis"
	api "github.com/xiebiao/posbuzz/internal/interface/http"
	"github.com/xiebiao/posbuzz/internal/interface/http/handler"
	"github.com/xiebiao/posbuzz/internal/interface/http/middleware"
	"github.com/xiebiao/posbuzz/pkg/logger"
	"github.com/xiebiao/posbuzz/pkg/metrics"
	"github.com/xiebiao/posbuzz/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", cfg.Database.DBName),
		zap.String("redis", cfg.Redis.Addr()),
		zap.Bool("mq_enabled", cfg.MQ.Enabled),
	)

	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			zlog.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zlog.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	srv, cleanup, err := buildServer(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化服务失败", zap.Error(err))
	}
	defer cleanup()

	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务异常退出", zap.Error(err))
		}
	}()

	// 优雅关闭：等待处理中的请求完成（包括开单事务）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务强制关闭", zap.Error(err))
	}
	zlog.Info("服务已关闭")
}

// buildServer 手动依赖注入
// Repository ← Service ← UseCase ← Handler（wire.go描述同一依赖图）
func buildServer(cfg *config.Config, zlog *zap.Logger) (*http.Server, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*http.Server, func(), error) {
		cleanup()
		return nil, nil, err
	}

	db, closeDB, err := provideDB(cfg, zlog)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeDB)

	redisClient, closeRedis, err := provideRedis(cfg, zlog)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeRedis)

	events, closeEvents, err := provideEventPublisher(cfg, zlog)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeEvents)

	program, err := provideLoyaltyProgram(cfg)
	if err != nil {
		return fail(err)
	}

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	inventoryRepo := mysql.NewInventoryLogRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	supplierRepo := mysql.NewSupplierRepository(db)
	promotionRepo := mysql.NewPromotionRepository(db)
	saleRepo := mysql.NewSaleRepository(db)
	analyticsRepo := mysql.NewAnalyticsRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	catalogCache := provideCatalogCache(redisClient, cfg, zlog)
	jwtManager := provideJWTManager(cfg)

	// 领域层
	userService := user.NewService(userRepo)
	productService := product.NewService(productRepo)
	customerService := customer.NewService(customerRepo, program)
	supplierService := supplier.NewService(supplierRepo)
	promotionService := promotion.NewService(promotionRepo)

	// 应用层
	createSale := appsale.NewCreateSaleUseCase(appsale.Repositories{
		Sales:      saleRepo,
		Products:   productRepo,
		Inventory:  inventoryRepo,
		Customers:  customerRepo,
		Promotions: promotionRepo,
	}, program, txManager, catalogCache, events, zlog)

	// 接口层
	handlers := api.Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, jwtManager, sessionStore, zlog),
			appuser.NewLogoutUseCase(sessionStore, jwtManager),
			appuser.NewProfileUseCase(userRepo),
		),
		Product: handler.NewProductHandler(
			appproduct.NewCatalogQuery(productService, catalogCache, zlog),
			appproduct.NewManageUseCase(productService, productRepo, inventoryRepo, txManager, catalogCache, zlog),
		),
		Sale: handler.NewSaleHandler(
			createSale,
			appsale.NewListSalesUseCase(saleRepo),
			appsale.NewGetSaleUseCase(saleRepo),
		),
		Customer:  handler.NewCustomerHandler(customerService, appcustomer.NewDetailUseCase(customerService, saleRepo)),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Promotion: handler.NewPromotionHandler(promotionService),
		Analytics: handler.NewAnalyticsHandler(appanalytics.NewQueryUseCase(analyticsRepo)),
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	engine := provideRouter(cfg, zlog, handlers, authMiddleware)
	return provideServer(cfg, engine), cleanup, nil
}
