package sale

import (
	"context"

	"github.com/xiebiao/posbuzz/internal/domain/sale"
	"github.com/xiebiao/posbuzz/internal/domain/user"
)

// Viewer 发起查询的用户
type Viewer struct {
	UserID uint
	Role   user.Role
}

// canSeeAll 管理员可查看全部销售单,收银员只能查看自己的
func (v Viewer) canSeeAll() bool {
	return v.Role == user.RoleAdmin
}

// ListSalesRequest 销售单列表请求
type ListSalesRequest struct {
	Viewer     Viewer
	Page       int
	PageSize   int
	CustomerID *uint
}

// ListSalesResponse 销售单列表
type ListSalesResponse struct {
	Sales []SaleResponse
	Total int64
}

// ListSalesUseCase 销售单列表用例
type ListSalesUseCase struct {
	saleRepo sale.Repository
}

// NewListSalesUseCase 创建销售单列表用例
func NewListSalesUseCase(saleRepo sale.Repository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// Execute 按创建时间倒序分页查询
func (uc *ListSalesUseCase) Execute(ctx context.Context, req ListSalesRequest) (*ListSalesResponse, error) {
	params := sale.ListParams{
		Page:       req.Page,
		PageSize:   req.PageSize,
		CustomerID: req.CustomerID,
	}
	if !req.Viewer.canSeeAll() {
		operatorID := req.Viewer.UserID
		params.OperatorID = &operatorID
	}

	sales, total, err := uc.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := &ListSalesResponse{Sales: make([]SaleResponse, len(sales)), Total: total}
	for i, s := range sales {
		resp.Sales[i] = NewSaleResponse(s)
	}
	return resp, nil
}

// GetSaleUseCase 销售单详情用例
type GetSaleUseCase struct {
	saleRepo sale.Repository
}

// NewGetSaleUseCase 创建销售单详情用例
func NewGetSaleUseCase(saleRepo sale.Repository) *GetSaleUseCase {
	return &GetSaleUseCase{saleRepo: saleRepo}
}

// Execute 查询销售单
// 收银员查询他人的销售单返回不存在,不暴露单据是否存在
func (uc *GetSaleUseCase) Execute(ctx context.Context, viewer Viewer, id uint) (*SaleResponse, error) {
	s, err := uc.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.canSeeAll() && !s.IsOperatedBy(viewer.UserID) {
		return nil, sale.NotFound(id)
	}

	resp := NewSaleResponse(s)
	return &resp, nil
}
