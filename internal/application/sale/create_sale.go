package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/domain/inventory"
	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	"github.com/xiebiao/posbuzz/internal/domain/product"
	"github.com/xiebiao/posbuzz/internal/domain/promotion"
	"github.com/xiebiao/posbuzz/internal/domain/sale"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
	"github.com/xiebiao/posbuzz/pkg/metrics"
	"github.com/xiebiao/posbuzz/pkg/tracing"
)

const tracerName = "posbuzz/sale"

// TxManager 事务管理(mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories 开单涉及的仓储
type Repositories struct {
	Sales      sale.Repository
	Products   product.Repository
	Inventory  inventory.Repository
	Customers  customer.Repository
	Promotions promotion.Repository
}

// CreateSaleUseCase 开单用例
// 涉及:事务处理、悲观锁防超卖、促销折扣、会员积分
type CreateSaleUseCase struct {
	repos     Repositories
	program   *loyalty.Program
	txManager TxManager
	cache     product.Cache
	events    sale.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewCreateSaleUseCase 创建开单用例
func NewCreateSaleUseCase(
	repos Repositories,
	program *loyalty.Program,
	txManager TxManager,
	cache product.Cache,
	events sale.EventPublisher,
	logger *zap.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		repos:     repos,
		program:   program,
		txManager: txManager,
		cache:     cache,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute 执行开单
//
// 防超卖:每一行明细都在同一事务内
//  1. SELECT ... FOR UPDATE 锁定商品行
//  2. 检查库存是否充足
//  3. 条件更新扣减库存,写入库存台账
//
// 任一步失败整个事务回滚:库存、台账、积分、销售单都不会留下痕迹。
// 提交后再失效缓存、发布事件,这两步失败只记日志,不影响开单结果。
func (uc *CreateSaleUseCase) Execute(ctx context.Context, req CreateSaleRequest) (*CreateSaleResponse, error) {
	start := uc.now()

	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateSale")
	defer span.End()

	resp, lines, err := uc.execute(ctx, req)
	if err != nil {
		tracing.RecordError(span, err)
		kind := apperrors.GetAppError(err).Kind()
		metrics.IncCounterVec(metrics.SalesFailedTotal, map[string]string{"kind": string(kind)})
		if kind == apperrors.KindInternal {
			uc.logger.Error("开单失败", zap.Uint("operator_id", req.OperatorID), zap.Error(err))
		} else {
			uc.logger.Info("开单被拒绝", zap.Uint("operator_id", req.OperatorID), zap.String("kind", string(kind)), zap.Error(err))
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.String("sale.no", resp.SaleNo),
		attribute.Int("sale.items", len(resp.Items)),
		attribute.String("sale.final_amount", resp.FinalAmount),
	)

	uc.afterCommit(ctx, resp, lines)

	metrics.IncCounterVec(metrics.SalesCreatedTotal, map[string]string{"payment_method": resp.PaymentMethod})
	if amount, err := decimal.NewFromString(resp.FinalAmount); err == nil {
		metrics.AddCounter(metrics.SaleAmountTotal, amount.InexactFloat64())
	}
	metrics.ObserveHistogram(metrics.SaleProcessingDuration, time.Since(start).Seconds())

	uc.logger.Info("开单成功",
		zap.String("sale_no", resp.SaleNo),
		zap.Uint("operator_id", resp.OperatorID),
		zap.String("final_amount", resp.FinalAmount),
		zap.Int("points_earned", resp.PointsEarned))

	return resp, nil
}

func (uc *CreateSaleUseCase) execute(ctx context.Context, req CreateSaleRequest) (*CreateSaleResponse, []sale.CompletedLine, error) {
	// 1. 事务外的参数校验
	if len(req.Items) == 0 {
		return nil, nil, sale.ErrEmptySale
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, nil, sale.ErrInvalidQuantity.WithDetails(map[string]interface{}{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			})
		}
	}
	method, err := sale.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, nil, err
	}

	saleNo := sale.GenerateSaleNo()

	var (
		saved   *sale.Sale
		accrual *loyalty.Accrual
		lines   []sale.CompletedLine
	)

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		lines = lines[:0]

		// 2. 锁定顾客(同一顾客的并发开单串行累计积分)
		var cust *customer.Customer
		if req.CustomerID != nil {
			c, err := uc.repos.Customers.LockByID(txCtx, *req.CustomerID)
			if err != nil {
				return err
			}
			cust = c
		}

		// 3. 逐行锁定、校验并扣减库存,使用锁定时的价格
		items := make([]sale.Item, 0, len(req.Items))
		for _, line := range req.Items {
			p, err := uc.repos.Products.LockByID(txCtx, line.ProductID)
			if err != nil {
				return err
			}
			if p.StockQuantity < line.Quantity {
				return product.InsufficientStock(p.ID, p.StockQuantity, line.Quantity)
			}

			if err := uc.repos.Products.UpdateStock(txCtx, p.ID, -line.Quantity); err != nil {
				return err
			}

			log := inventory.NewSaleLog(p.ID, line.Quantity, p.StockQuantity, req.OperatorID, saleNo)
			if err := uc.repos.Inventory.Create(txCtx, log); err != nil {
				return err
			}

			items = append(items, sale.NewItem(p.ID, line.Quantity, p.Price, p.CostPrice))
			lines = append(lines, sale.CompletedLine{
				ProductID:         p.ID,
				ProductName:       p.Name,
				Quantity:          line.Quantity,
				StockAfter:        log.StockAfter,
				LowStockThreshold: p.LowStockThreshold,
			})
		}

		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.Subtotal)
		}

		// 4. 促销:不存在报错,不适用则不打折也不记录
		discount := decimal.Zero
		var promotionID *uint
		if req.PromotionID != nil {
			promo, err := uc.repos.Promotions.FindByID(txCtx, *req.PromotionID)
			if err != nil {
				return err
			}
			if now := uc.now(); promo.IsApplicable(subtotal, now) {
				discount = promo.DiscountFor(subtotal, now)
				promotionID = &promo.ID
			}
		}

		s, err := sale.NewSale(saleNo, req.OperatorID, items, discount, method)
		if err != nil {
			return err
		}
		s.PromotionID = promotionID

		// 5. 会员积分按实付金额累计,等级只升不降
		if cust != nil {
			a := uc.program.Accrue(cust.LoyaltyPoints, cust.Tier, s.FinalAmount)
			if err := uc.repos.Customers.UpdateLoyalty(txCtx, cust.ID, a.TotalPoints, a.Tier); err != nil {
				return err
			}
			s.CustomerID = &cust.ID
			s.PointsEarned = a.Earned
			accrual = &a
		}

		// 6. 持久化并重新加载(带商品名称与收银员)
		if err := uc.repos.Sales.Create(txCtx, s); err != nil {
			return err
		}
		saved, err = uc.repos.Sales.FindByID(txCtx, s.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	resp := &CreateSaleResponse{SaleResponse: NewSaleResponse(saved)}
	if accrual != nil {
		resp.Loyalty = &LoyaltyResponse{
			PointsEarned: accrual.Earned,
			TotalPoints:  accrual.TotalPoints,
			Tier:         accrual.Tier,
			Upgraded:     accrual.Upgraded,
		}
	}
	return resp, lines, nil
}

// afterCommit 失效缓存并发布事件(尽力而为)
func (uc *CreateSaleUseCase) afterCommit(ctx context.Context, resp *CreateSaleResponse, lines []sale.CompletedLine) {
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, ids...); err != nil {
			uc.logger.Warn("销售后失效商品缓存失败", zap.String("sale_no", resp.SaleNo), zap.Error(err))
		}
	}

	if uc.events != nil {
		event := &sale.CompletedEvent{
			SaleID:      resp.ID,
			SaleNo:      resp.SaleNo,
			OperatorID:  resp.OperatorID,
			CustomerID:  resp.CustomerID,
			FinalAmount: resp.FinalAmount,
			Lines:       lines,
			OccurredAt:  uc.now(),
		}
		if err := uc.events.PublishCompleted(ctx, event); err != nil {
			uc.logger.Warn("发布销售事件失败", zap.String("sale_no", resp.SaleNo), zap.Error(err))
		}
	}
}
