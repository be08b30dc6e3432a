// Package http HTTP接口层：路由、中间件、处理器
package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/domain/user"
	"github.com/xiebiao/posbuzz/internal/interface/http/handler"
	"github.com/xiebiao/posbuzz/internal/interface/http/middleware"
	"github.com/xiebiao/posbuzz/pkg/metrics"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	Customer  *handler.CustomerHandler
	Supplier  *handler.SupplierHandler
	Promotion *handler.PromotionHandler
	Analytics *handler.AnalyticsHandler
}

// RouterOptions 路由选项
type RouterOptions struct {
	Mode          string // debug | release | test
	EnableSwagger bool
}

// NewRouter 创建Gin引擎并注册路由
//
//	/ping                  健康检查
//	/metrics               Prometheus指标
//	/swagger/*any          API文档（release模式下关闭）
//	/api/v1/...            业务接口
func NewRouter(opts RouterOptions, logger *zap.Logger, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger), middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// 公开接口
	users := v1.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
	}
	v1.GET("/products", h.Product.List)
	v1.GET("/products/:id", h.Product.Get)

	// 需要登录
	authorized := v1.Group("", auth.RequireAuth())
	{
		authorized.POST("/users/logout", h.User.Logout)
		authorized.GET("/profile", h.User.Profile)

		sales := authorized.Group("/sales")
		{
			sales.POST("", h.Sale.Create)
			sales.GET("", h.Sale.List)
			sales.GET("/:id", h.Sale.Get)
		}

		customers := authorized.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
		}

		suppliers := authorized.Group("/suppliers")
		{
			suppliers.GET("", h.Supplier.List)
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("/:id", h.Supplier.Get)
			suppliers.PUT("/:id", h.Supplier.Update)
		}

		promotions := authorized.Group("/promotions")
		{
			promotions.GET("", h.Promotion.List)
			promotions.GET("/active", h.Promotion.Active)
			promotions.GET("/:id", h.Promotion.Get)
		}
	}

	// 仅管理员
	admin := v1.Group("", auth.RequireAuth(), middleware.RequireRole(user.RoleAdmin))
	{
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/:id/restock", h.Product.Restock)
		admin.GET("/products/:id/inventory-logs", h.Product.InventoryLogs)

		admin.DELETE("/customers/:id", h.Customer.Delete)
		admin.DELETE("/suppliers/:id", h.Supplier.Delete)

		admin.POST("/promotions", h.Promotion.Create)
		admin.PUT("/promotions/:id", h.Promotion.Update)
		admin.DELETE("/promotions/:id", h.Promotion.Delete)

		analytics := admin.Group("/analytics")
		{
			analytics.GET("/summary", h.Analytics.Summary)
			analytics.GET("/trend", h.Analytics.Trend)
			analytics.GET("/top-products", h.Analytics.TopProducts)
			analytics.GET("/staff-performance", h.Analytics.StaffPerformance)
		}
	}

	return r
}
