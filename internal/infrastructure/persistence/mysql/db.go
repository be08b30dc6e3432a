package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/posbuzz/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. database.auto_migrate为true时自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		log.Info("数据库表结构已迁移")
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段；
// 生产环境应使用版本化的迁移脚本
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&SupplierModel{},
		&ProductModel{},
		&InventoryLogModel{},
		&CustomerModel{},
		&PromotionModel{},
		&SaleModel{},
		&SaleItemModel{},
	)
}

// UserModel GORM用户模型
// domain/user/entity.go是领域实体，不依赖GORM；Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string         `gorm:"size:50;not null;comment:姓名"`
	Role      string         `gorm:"size:20;not null;default:CASHIER;index;comment:角色(ADMIN/CASHIER)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

func (UserModel) TableName() string {
	return "users"
}

// SupplierModel GORM供应商模型
type SupplierModel struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null;index;comment:名称"`
	Email     *string `gorm:"size:100;comment:邮箱"`
	Phone     *string `gorm:"size:30;comment:电话"`
	Address   *string `gorm:"size:255;comment:地址"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SupplierModel) TableName() string {
	return "suppliers"
}

// ProductModel GORM商品模型
// 1. 金额使用DECIMAL(12,2)
// 2. SKU有唯一索引，防止重复
// 3. 软删除：历史销售明细仍通过Unscoped关联
type ProductModel struct {
	ID                uint            `gorm:"primaryKey"`
	Name              string          `gorm:"index:idx_product_search;size:200;not null;comment:名称"`
	SKU               string          `gorm:"uniqueIndex;size:64;not null;comment:SKU"`
	Description       string          `gorm:"type:text;comment:描述"`
	Category          string          `gorm:"size:64;index;comment:分类"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:售价"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:成本价"`
	StockQuantity     int             `gorm:"not null;default:0;comment:库存数量"`
	LowStockThreshold int             `gorm:"not null;default:10;comment:低库存阈值"`
	SupplierID        *uint           `gorm:"index;comment:供应商ID"`
	Supplier          *SupplierModel  `gorm:"foreignKey:SupplierID;constraint:OnDelete:SET NULL"`
	CreatedAt         time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (ProductModel) TableName() string {
	return "products"
}

// InventoryLogModel GORM库存台账模型（只增不改）
type InventoryLogModel struct {
	ID          uint      `gorm:"primaryKey"`
	ProductID   uint      `gorm:"index:idx_inventory_product;not null;comment:商品ID"`
	Delta       int       `gorm:"not null;comment:变更数量(正增负减)"`
	Reason      string    `gorm:"size:20;not null;comment:原因(SALE/RESTOCK/ADJUSTMENT)"`
	Note        string    `gorm:"size:255;comment:备注"`
	OperatorID  uint      `gorm:"index;comment:操作人"`
	StockBefore int       `gorm:"not null;comment:变更前库存"`
	StockAfter  int       `gorm:"not null;comment:变更后库存"`
	CreatedAt   time.Time `gorm:"index:idx_inventory_product;comment:创建时间"`
}

func (InventoryLogModel) TableName() string {
	return "inventory_logs"
}

// CustomerModel GORM顾客模型
// Email可为空，MySQL唯一索引允许多个NULL
type CustomerModel struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"size:100;not null;index;comment:姓名"`
	Email         *string `gorm:"uniqueIndex;size:100;comment:邮箱"`
	Phone         *string `gorm:"size:30;index;comment:电话"`
	LoyaltyPoints int     `gorm:"not null;default:0;comment:累计积分"`
	Tier          string  `gorm:"size:20;not null;comment:会员等级"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

// PromotionModel GORM促销模型
type PromotionModel struct {
	ID          uint                `gorm:"primaryKey"`
	Name        string              `gorm:"size:100;not null"`
	Description string              `gorm:"size:255"`
	Type        string              `gorm:"size:20;not null;comment:PERCENTAGE/FIXED_AMOUNT"`
	Value       decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	MinSpend    decimal.NullDecimal `gorm:"type:decimal(12,2);comment:最低消费(NULL表示无门槛)"`
	Active      bool                `gorm:"not null;default:true;index:idx_promotion_active"`
	StartDate   time.Time           `gorm:"not null;index:idx_promotion_active"`
	EndDate     time.Time           `gorm:"not null;index:idx_promotion_active"`
	CreatedAt   time.Time           `gorm:"index"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (PromotionModel) TableName() string {
	return "promotions"
}

// SaleModel GORM销售单模型
// 1. 与SaleItemModel是一对多关系，创建时一起写入
// 2. SaleNo有唯一索引(业务主键)
// 3. 创建后不再修改，没有UpdatedAt
type SaleModel struct {
	ID            uint            `gorm:"primaryKey"`
	SaleNo        string          `gorm:"uniqueIndex;size:32;not null;comment:销售单号"`
	OperatorID    uint            `gorm:"index;not null;comment:收银员ID"`
	Operator      *UserModel      `gorm:"foreignKey:OperatorID"`
	CustomerID    *uint           `gorm:"index;comment:顾客ID"`
	PromotionID   *uint           `gorm:"index;comment:促销ID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:小计"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:折扣"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:实付"`
	PaymentMethod string          `gorm:"size:20;not null;comment:支付方式"`
	PointsEarned  int             `gorm:"not null;default:0;comment:获得积分"`
	Items         []SaleItemModel `gorm:"foreignKey:SaleID"`
	CreatedAt     time.Time       `gorm:"index;comment:创建时间"`
}

func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel GORM销售明细模型
// UnitPrice、UnitCost记录成交时的价格快照
type SaleItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	SaleID    uint            `gorm:"index;not null;comment:销售单ID"`
	ProductID uint            `gorm:"index;not null;comment:商品ID"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"not null;comment:数量"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:成交单价"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:成交成本"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:小计"`
}

func (SaleItemModel) TableName() string {
	return "sale_items"
}
