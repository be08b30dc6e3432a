package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/domain/inventory"
	"github.com/xiebiao/posbuzz/internal/domain/product"
)

// TxManager 事务管理(mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ManageUseCase 商品维护用例(管理员)
// 所有写操作提交后失效product:<id>及全部列表缓存;
// 库存的任何变化都写入库存台账
type ManageUseCase struct {
	service       product.Service
	productRepo   product.Repository
	inventoryRepo inventory.Repository
	txManager     TxManager
	cache         product.Cache
	logger        *zap.Logger
}

// NewManageUseCase 创建商品维护用例
func NewManageUseCase(
	service product.Service,
	productRepo product.Repository,
	inventoryRepo inventory.Repository,
	txManager TxManager,
	cache product.Cache,
	logger *zap.Logger,
) *ManageUseCase {
	return &ManageUseCase{
		service:       service,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		cache:         cache,
		logger:        logger,
	}
}

// Create 创建商品,初始库存记为一次补货
func (uc *ManageUseCase) Create(ctx context.Context, operatorID uint, params product.CreateParams) (*ProductResponse, error) {
	var created *product.Product
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		p, err := uc.service.CreateProduct(txCtx, params)
		if err != nil {
			return err
		}
		if p.StockQuantity > 0 {
			log := inventory.NewRestockLog(p.ID, p.StockQuantity, 0, operatorID, "Initial stock")
			if err := uc.inventoryRepo.Create(txCtx, log); err != nil {
				return err
			}
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, created.ID)
	uc.logger.Info("商品已创建", zap.Uint("product_id", created.ID), zap.String("sku", created.SKU))

	resp := NewProductResponse(created)
	return &resp, nil
}

// Update 修改商品,直接修改库存时记一笔人工调整
func (uc *ManageUseCase) Update(ctx context.Context, operatorID, id uint, fields product.UpdateFields) (*ProductResponse, error) {
	var updated *product.Product
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		before, err := uc.productRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}

		p, err := uc.service.UpdateProduct(txCtx, id, fields)
		if err != nil {
			return err
		}

		if p.StockQuantity != before.StockQuantity {
			log := inventory.NewAdjustmentLog(p.ID, before.StockQuantity, p.StockQuantity, operatorID)
			if err := uc.inventoryRepo.Create(txCtx, log); err != nil {
				return err
			}
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)

	resp := NewProductResponse(updated)
	return &resp, nil
}

// Delete 删除商品(软删除)
func (uc *ManageUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.service.DeleteProduct(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	uc.logger.Info("商品已删除", zap.Uint("product_id", id))
	return nil
}

// Restock 补货入库
func (uc *ManageUseCase) Restock(ctx context.Context, operatorID, id uint, quantity int, note string) (*ProductResponse, error) {
	if quantity <= 0 {
		return nil, product.ErrInvalidQuantity
	}

	var restocked *product.Product
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		p, err := uc.productRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := uc.productRepo.UpdateStock(txCtx, id, quantity); err != nil {
			return err
		}

		log := inventory.NewRestockLog(id, quantity, p.StockQuantity, operatorID, note)
		if err := uc.inventoryRepo.Create(txCtx, log); err != nil {
			return err
		}

		if err := p.IncrStock(quantity); err != nil {
			return err
		}
		restocked = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)

	resp := NewProductResponse(restocked)
	return &resp, nil
}

// InventoryLogs 商品库存台账
func (uc *ManageUseCase) InventoryLogs(ctx context.Context, id uint, page, pageSize int) ([]InventoryLogResponse, int64, error) {
	if _, err := uc.service.GetProduct(ctx, id); err != nil {
		return nil, 0, err
	}

	logs, total, err := uc.inventoryRepo.ListByProductID(ctx, id, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	result := make([]InventoryLogResponse, len(logs))
	for i, l := range logs {
		result[i] = newInventoryLogResponse(l)
	}
	return result, total, nil
}

func (uc *ManageUseCase) invalidate(ctx context.Context, id uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.logger.Warn("失效商品缓存失败", zap.Uint("product_id", id), zap.Error(err))
	}
}
