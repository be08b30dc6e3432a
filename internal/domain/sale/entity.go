// Package sale 销售单聚合
package sale

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "CASH"
	PaymentCard  PaymentMethod = "CARD"
	PaymentOther PaymentMethod = "OTHER"
)

// ParsePaymentMethod 解析支付方式（不区分大小写），空值默认为现金
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case "":
		return PaymentCash, nil
	case PaymentCash, PaymentCard, PaymentOther:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod.WithDetails(map[string]interface{}{"payment_method": s})
	}
}

// Item 销售明细
// UnitPrice、UnitCost是成交时的快照，商品后续调价不影响历史销售
type Item struct {
	ID        uint
	SaleID    uint
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
	Subtotal  decimal.Decimal

	// 关联商品信息（查询时填充，商品被软删除后仍可显示）
	ProductName string
	ProductSKU  string
}

// NewItem 创建明细，小计 = 单价 × 数量
func NewItem(productID uint, quantity int, unitPrice, unitCost decimal.Decimal) Item {
	return Item{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		UnitCost:  unitCost,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Profit 明细毛利 = (单价 - 成本) × 数量
func (i Item) Profit() decimal.Decimal {
	return i.UnitPrice.Sub(i.UnitCost).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale 销售单(聚合根)，创建后不可修改
type Sale struct {
	ID            uint
	SaleNo        string
	OperatorID    uint
	CustomerID    *uint
	PromotionID   *uint
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	FinalAmount   decimal.Decimal
	PaymentMethod PaymentMethod
	PointsEarned  int
	Items         []Item
	CreatedAt     time.Time

	// 查询时填充
	OperatorName string
}

// NewSale 创建销售单
// 业务规则：
// - 至少一条明细
// - 小计 = 各明细小计之和
// - 0 <= 折扣 <= 小计，实付 = 小计 - 折扣
func NewSale(saleNo string, operatorID uint, items []Item, discount decimal.Decimal, method PaymentMethod) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptySale
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}

	if discount.IsNegative() || discount.GreaterThan(subtotal) {
		return nil, ErrInvalidDiscount.WithDetails(map[string]interface{}{
			"subtotal": subtotal.StringFixed(2),
			"discount": discount.StringFixed(2),
		})
	}

	return &Sale{
		SaleNo:        saleNo,
		OperatorID:    operatorID,
		Subtotal:      subtotal,
		Discount:      discount,
		FinalAmount:   subtotal.Sub(discount),
		PaymentMethod: method,
		Items:         items,
		CreatedAt:     time.Now(),
	}, nil
}

// IsOperatedBy 是否由指定收银员开单
func (s *Sale) IsOperatedBy(userID uint) bool {
	return s.OperatorID == userID
}

// ItemCount 商品总件数
func (s *Sale) ItemCount() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
