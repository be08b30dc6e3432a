//go:build wireinject
// +build wireinject

// Wire依赖注入配置（wire gen ./cmd/api 生成wire_gen.go）
// 与main.go中buildServer的手动组装描述同一依赖图

package main

import (
	"net/http"

	"github.com/google/wire"
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
)

// infrastructureSet 连接与外部依赖
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideEventPublisher,
	provideLoyaltyProgram,
	provideJWTManager,
	provideCatalogCache,
	redis.NewSessionStore,
	wire.Bind(new(product.Cache), new(*redis.CatalogCache)),
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewProductRepository,
	mysql.NewInventoryLogRepository,
	mysql.NewCustomerRepository,
	mysql.NewSupplierRepository,
	mysql.NewPromotionRepository,
	mysql.NewSaleRepository,
	mysql.NewAnalyticsRepository,
	mysql.NewTxManager,
	wire.Bind(new(appsale.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appproduct.TxManager), new(*mysql.TxManager)),
	wire.Struct(new(appsale.Repositories), "*"),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	product.NewService,
	customer.NewService,
	supplier.NewService,
	promotion.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appproduct.NewCatalogQuery,
	appproduct.NewManageUseCase,
	appsale.NewCreateSaleUseCase,
	appsale.NewListSalesUseCase,
	appsale.NewGetSaleUseCase,
	appcustomer.NewDetailUseCase,
	appanalytics.NewQueryUseCase,
)

// interfaceSet 处理器、中间件与路由
var interfaceSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewSaleHandler,
	handler.NewCustomerHandler,
	handler.NewSupplierHandler,
	handler.NewPromotionHandler,
	handler.NewAnalyticsHandler,
	wire.Struct(new(api.Handlers), "*"),
	middleware.NewAuthMiddleware,
	provideRouter,
	provideServer,
)

// InitializeServer 组装HTTP服务，返回的cleanup按创建的逆序关闭连接
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*http.Server, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
