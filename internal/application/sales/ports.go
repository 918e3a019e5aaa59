package sales

import (
	"context"

	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockAdjuster es la parte del catálogo que usa el coordinador (implementada por catalog.ProductLedger).
type StockAdjuster interface {
	AdjustStock(ctx context.Context, id string, delta int, mode entity.StockMode) (*dto.StockAdjustmentResponse, error)
}

// CustomerStatsUpdater es la parte del libro de clientes que usa el coordinador
// (implementada por customers.CustomerLedger).
type CustomerStatsUpdater interface {
	UpdateStats(ctx context.Context, id string, saleTotal decimal.Decimal) (*dto.CustomerResponse, error)
}
