// Package reports contiene los reportes del POS: tablero del día y reporte de ventas.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardRecentSales = 5 // ventas recientes en el tablero

// DashboardUseCase arma el tablero del día a partir de catálogo, clientes y ventas.
type DashboardUseCase struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, customers: customers, sales: sales, now: time.Now}
}

// GetDashboard lee las tres tablas en paralelo y calcula los indicadores.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type customersResult struct {
		list []*entity.Customer
		err  error
	}
	type salesResult struct {
		list []*entity.Sale
		err  error
	}

	productsCh := make(chan productsResult, 1)
	customersCh := make(chan customersResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		list, err := uc.products.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.customers.List(ctx)
		customersCh <- customersResult{list, err}
	}()
	go func() {
		list, err := uc.sales.List(ctx)
		salesCh <- salesResult{list, err}
	}()

	products := <-productsCh
	customers := <-customersCh
	sales := <-salesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", customers.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}

	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	todaySales := decimal.Zero
	todayCount := 0
	for _, s := range sales.list {
		d := s.Date.In(now.Location())
		if !d.Before(todayStart) && d.Before(todayEnd) {
			todaySales = todaySales.Add(s.Total)
			todayCount++
		}
	}

	lowStock := make([]*entity.Product, 0)
	for _, p := range products.list {
		if p.IsLowStock() {
			lowStock = append(lowStock, p)
		}
	}

	// Últimas N en orden de registro, la más reciente primero.
	recent := make([]*entity.Sale, 0, dashboardRecentSales)
	for i := len(sales.list) - 1; i >= 0 && len(recent) < dashboardRecentSales; i-- {
		recent = append(recent, sales.list[i])
	}

	return &dto.DashboardDTO{
		TodaySales:        todaySales,
		TodayTransactions: todayCount,
		TotalProducts:     len(products.list),
		LowStockItems:     len(lowStock),
		TotalCustomers:    len(customers.list),
		RecentSales:       dto.NewSaleListResponse(recent),
		LowStockProducts:  dto.NewProductListResponse(lowStock),
	}, nil
}
