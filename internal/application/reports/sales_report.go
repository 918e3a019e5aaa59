package reports

import (
	"context"
	"time"

	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SalesTotals calcula total y cantidad de ventas directamente en el respaldo.
// from es inclusivo y to exclusivo; nil significa sin límite. customerID vacío no filtra.
type SalesTotals interface {
	SalesTotals(ctx context.Context, from, to *time.Time, customerID string) (decimal.Decimal, int, error)
}

// SalesReportUseCase filtra ventas por rango de fechas y cliente y calcula totales.
type SalesReportUseCase struct {
	sales  repository.SaleRepository
	totals SalesTotals
}

// SalesReportOption configura el caso de uso.
type SalesReportOption func(*SalesReportUseCase)

// WithSalesTotals delega el resumen al respaldo (PostgreSQL suma en NUMERIC).
func WithSalesTotals(t SalesTotals) SalesReportOption {
	return func(uc *SalesReportUseCase) { uc.totals = t }
}

func NewSalesReportUseCase(sales repository.SaleRepository, opts ...SalesReportOption) *SalesReportUseCase {
	uc := &SalesReportUseCase{sales: sales}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetReport aplica los filtros. StartDate y EndDate se toman como días completos.
func (uc *SalesReportUseCase) GetReport(ctx context.Context, f dto.SalesReportFilter) (*dto.SalesReportDTO, error) {
	list, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	from, to := bounds(f)
	filtered := make([]*entity.Sale, 0, len(list))
	total := decimal.Zero
	for _, s := range list {
		if !matches(s, from, to, f.CustomerID) {
			continue
		}
		filtered = append(filtered, s)
		total = total.Add(s.Total)
	}
	count := len(filtered)

	if uc.totals != nil {
		total, count, err = uc.totals.SalesTotals(ctx, from, to, f.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count))).Round(2)
	}
	return &dto.SalesReportDTO{
		Sales: dto.NewSaleListResponse(filtered),
		Summary: dto.SalesSummaryDTO{
			Total:             total,
			TotalTransactions: count,
			AverageTicket:     avg,
		},
	}, nil
}

// bounds convierte las fechas del filtro en [from, to).
func bounds(f dto.SalesReportFilter) (from, to *time.Time) {
	if f.StartDate != nil {
		start := dayStart(*f.StartDate)
		from = &start
	}
	if f.EndDate != nil {
		end := dayStart(*f.EndDate).AddDate(0, 0, 1)
		to = &end
	}
	return from, to
}

func matches(s *entity.Sale, from, to *time.Time, customerID string) bool {
	if customerID != "" && (s.CustomerID == nil || *s.CustomerID != customerID) {
		return false
	}
	if from != nil && s.Date.Before(*from) {
		return false
	}
	if to != nil && !s.Date.Before(*to) {
		return false
	}
	return true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
