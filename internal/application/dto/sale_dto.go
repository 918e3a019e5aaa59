package dto

import (
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada de POST /api/sales.
type CreateSaleRequest struct {
	CustomerID   *string           `json:"customerId"`
	CustomerName string            `json:"customerName"`
	Items        []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea solicitada. Sin Price se usa el precio del catálogo.
type SaleItemRequest struct {
	ProductID   string           `json:"productId"`
	Quantity    int              `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	ProductName string           `json:"productName"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerID   *string            `json:"customerId"`
	CustomerName string             `json:"customerName"`
	Items        []SaleItemResponse `json:"items"`
	Total        decimal.Decimal    `json:"total"`
	Date         time.Time          `json:"date"`
	CreatedAt    time.Time          `json:"createdAt"`
	// Warnings lista efectos secundarios que no se aplicaron por completo.
	Warnings []string `json:"warnings,omitempty"`
}

// SaleItemResponse salida de una línea de venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"saleId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func NewSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:          it.ID,
			SaleID:      it.SaleID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}
	return SaleResponse{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		Items:        items,
		Total:        s.Total,
		Date:         s.Date,
		CreatedAt:    s.CreatedAt,
	}
}

func NewSaleListResponse(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewSaleResponse(s))
	}
	return out
}

// ReconciliationEntryDTO efecto secundario pendiente de una venta.
type ReconciliationEntryDTO struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"saleId"`
	Kind      string          `json:"kind"`
	TargetID  string          `json:"targetId"`
	Quantity  int             `json:"quantity,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Retryable bool            `json:"retryable"`
	Attempts  int             `json:"attempts"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ReconciliationMetricsDTO contadores acumulados del registro de reconciliación desde el arranque.
type ReconciliationMetricsDTO struct {
	Pending  int    `json:"pending"`
	Recorded uint64 `json:"recorded"`
	Resolved uint64 `json:"resolved"`
	Dropped  uint64 `json:"dropped"`
}

// ReconciliationRetryResponse resultado de POST /api/reconciliation/retry.
type ReconciliationRetryResponse struct {
	Resolved int                      `json:"resolved"`
	Pending  []ReconciliationEntryDTO `json:"pending"`
}
