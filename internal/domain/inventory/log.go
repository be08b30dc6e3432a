// Package inventory 库存变更台账
//
// 台账只增不改：每次库存变更记录变更量、变更前后库存与操作人，
// 用于审计、对账与异常排查。
package inventory

import (
	"fmt"
	"time"
)

// Reason 库存变更原因
type Reason string

const (
	ReasonSale       Reason = "SALE"       // 销售出库
	ReasonRestock    Reason = "RESTOCK"    // 补货入库
	ReasonAdjustment Reason = "ADJUSTMENT" // 人工调整
)

// Log 库存变更记录
type Log struct {
	ID          uint
	ProductID   uint
	Delta       int // 正数=增加，负数=减少
	Reason      Reason
	Note        string
	OperatorID  uint
	StockBefore int
	StockAfter  int
	CreatedAt   time.Time
}

// NewSaleLog 销售出库记录，备注中带销售单号
func NewSaleLog(productID uint, quantity, before int, operatorID uint, saleNo string) *Log {
	return &Log{
		ProductID:   productID,
		Delta:       -quantity,
		Reason:      ReasonSale,
		Note:        fmt.Sprintf("Sale %s", saleNo),
		OperatorID:  operatorID,
		StockBefore: before,
		StockAfter:  before - quantity,
		CreatedAt:   time.Now(),
	}
}

// NewRestockLog 补货入库记录
func NewRestockLog(productID uint, quantity, before int, operatorID uint, note string) *Log {
	if note == "" {
		note = "Restock"
	}
	return &Log{
		ProductID:   productID,
		Delta:       quantity,
		Reason:      ReasonRestock,
		Note:        note,
		OperatorID:  operatorID,
		StockBefore: before,
		StockAfter:  before + quantity,
		CreatedAt:   time.Now(),
	}
}

// NewAdjustmentLog 人工调整记录（商品编辑时直接修改库存）
func NewAdjustmentLog(productID uint, before, after int, operatorID uint) *Log {
	return &Log{
		ProductID:   productID,
		Delta:       after - before,
		Reason:      ReasonAdjustment,
		Note:        "Manual adjustment",
		OperatorID:  operatorID,
		StockBefore: before,
		StockAfter:  after,
		CreatedAt:   time.Now(),
	}
}
