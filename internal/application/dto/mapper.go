package dto

import (
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/ledger"
)

// Conversión entidad -> respuesta. nil entra, nil sale.

func ToTenantResponse(t *entity.Tenant) *TenantResponse {
	if t == nil {
		return nil
	}
	return &TenantResponse{
		ID: t.ID, Name: t.Name, Slug: t.Slug, Tier: t.Tier, IsActive: t.IsActive,
		CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func ToAccountResponse(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID: a.ID, TenantID: a.TenantID, Email: a.Email, Name: a.Name, Role: string(a.Role),
		IsActive: a.IsActive, DeletedAt: a.DeletedAt, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID: c.ID, TenantID: c.TenantID, Name: c.Name, Description: c.Description,
		IsActive: c.IsActive, DeletedAt: c.DeletedAt, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID: p.ID, TenantID: p.TenantID, CategoryID: p.CategoryID, Name: p.Name, SKU: p.SKU,
		Description: p.Description, Price: p.Price, IsActive: p.IsActive, DeletedAt: p.DeletedAt,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func ToShiftResponse(s *entity.Shift) *ShiftResponse {
	if s == nil {
		return nil
	}
	return &ShiftResponse{
		ID: s.ID, TenantID: s.TenantID, AccountID: s.AccountID, Status: s.Status,
		OpeningCash: s.OpeningCash, ClosingCash: s.ClosingCash, CashSales: s.CashSales,
		ExpectedCash: s.ExpectedCash, Variance: s.Variance, OpenedAt: s.OpenedAt, ClosedAt: s.ClosedAt,
	}
}

func ToReconciliationResponse(r ledger.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		OpeningCash: r.OpeningCash, CashSales: r.CashSales, ExpectedCash: r.ExpectedCash,
		ClosingCash: r.ClosingCash, Variance: r.Variance, Status: r.Status(),
	}
}

func ToSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	return &SaleResponse{
		ID: s.ID, TenantID: s.TenantID, ShiftID: s.ShiftID, AccountID: s.AccountID, ProductID: s.ProductID,
		Quantity: s.Quantity, UnitPrice: s.UnitPrice, Total: s.Total, PaymentMethod: s.PaymentMethod,
		Status: s.Status, CreatedAt: s.CreatedAt,
	}
}

// MapSlice aplica f a cada elemento.
func MapSlice[E any, R any](in []E, f func(E) *R) []R {
	out := make([]R, 0, len(in))
	for _, e := range in {
		if r := f(e); r != nil {
			out = append(out, *r)
		}
	}
	return out
}
