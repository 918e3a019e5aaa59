package reports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/records"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

type repos struct {
	products  *records.ProductRepository
	customers *records.CustomerRepository
	sales     *records.SaleRepository
}

func seed(t *testing.T) repos {
	t.Helper()
	ctx := context.Background()
	g := recordstore.NewGuard(recordstore.NewMemoryStore())
	r := repos{
		products:  records.NewProductRepository(g),
		customers: records.NewCustomerRepository(g),
		sales:     records.NewSaleRepository(g),
	}
	require.NoError(t, r.products.Create(ctx, &entity.Product{ID: "p1", Name: "Tinto", Category: "bebidas", Price: decimal.NewFromInt(2500), Stock: 20, MinStock: 5}))
	require.NoError(t, r.products.Create(ctx, &entity.Product{ID: "p2", Name: "Agua", Category: "bebidas", Price: decimal.NewFromInt(3000), Stock: 2, MinStock: 5}))
	require.NoError(t, r.customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ana", TotalSpent: decimal.Zero}))

	c1 := "c1"
	sales := []struct {
		id       string
		at       time.Time
		total    int64
		customer *string
	}{
		{"s1", now.AddDate(0, 0, -2), 1000, &c1},
		{"s2", now.AddDate(0, 0, -1), 2000, nil},
		{"s3", now.Add(-2 * time.Hour), 3000, &c1},
		{"s4", now.Add(-time.Hour), 4000, nil},
		{"s5", now.Add(-30 * time.Minute), 5000, nil},
		{"s6", now.Add(-10 * time.Minute), 6000, nil},
	}
	for _, s := range sales {
		name := entity.WalkInCustomerName
		if s.customer != nil {
			name = "Ana"
		}
		require.NoError(t, r.sales.Create(ctx, &entity.Sale{
			ID: s.id, CustomerID: s.customer, CustomerName: name,
			Total: decimal.NewFromInt(s.total), Date: s.at, CreatedAt: s.at,
		}))
	}
	return r
}

func TestDashboard(t *testing.T) {
	r := seed(t)
	uc := NewDashboardUseCase(r.products, r.customers, r.sales)
	uc.now = func() time.Time { return now }

	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, out.TodaySales.Equal(decimal.NewFromInt(18000)), out.TodaySales.String())
	assert.Equal(t, 4, out.TodayTransactions)
	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, 1, out.LowStockItems)
	assert.Equal(t, 1, out.TotalCustomers)
	require.Len(t, out.LowStockProducts, 1)
	assert.Equal(t, "p2", out.LowStockProducts[0].ID)

	require.Len(t, out.RecentSales, 5)
	ids := make([]string, 0, 5)
	for _, s := range out.RecentSales {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s6", "s5", "s4", "s3", "s2"}, ids)
}

func TestSalesReport_Filters(t *testing.T) {
	r := seed(t)
	uc := NewSalesReportUseCase(r.sales)
	ctx := context.Background()
	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}

	cases := []struct {
		filter dto.SalesReportFilter
		count  int
		total  int64
	}{
		{dto.SalesReportFilter{}, 6, 21000},
		{dto.SalesReportFilter{StartDate: day(-1)}, 5, 20000},
		{dto.SalesReportFilter{EndDate: day(-1)}, 2, 3000},
		{dto.SalesReportFilter{StartDate: day(-2), EndDate: day(-2)}, 1, 1000},
		{dto.SalesReportFilter{CustomerID: "c1"}, 2, 4000},
		{dto.SalesReportFilter{CustomerID: "nadie"}, 0, 0},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			out, err := uc.GetReport(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, out.Sales, tc.count)
			assert.Equal(t, tc.count, out.Summary.TotalTransactions)
			assert.True(t, out.Summary.Total.Equal(decimal.NewFromInt(tc.total)))
		})
	}
}

func TestSalesReport_AverageTicketRoundsToCents(t *testing.T) {
	r := seed(t)
	out, err := NewSalesReportUseCase(r.sales).GetReport(context.Background(), dto.SalesReportFilter{CustomerID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "2000", out.Summary.AverageTicket.String())

	all, err := NewSalesReportUseCase(r.sales).GetReport(context.Background(), dto.SalesReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "3500", all.Summary.AverageTicket.String())
}

type fixedTotals struct {
	total      decimal.Decimal
	count      int
	from, to   *time.Time
	customerID string
}

func (f *fixedTotals) SalesTotals(_ context.Context, from, to *time.Time, customerID string) (decimal.Decimal, int, error) {
	f.from, f.to, f.customerID = from, to, customerID
	return f.total, f.count, nil
}

func TestSalesReport_UsesStoreTotals(t *testing.T) {
	r := seed(t)
	totals := &fixedTotals{total: decimal.RequireFromString("3000.50"), count: 2}
	uc := NewSalesReportUseCase(r.sales, WithSalesTotals(totals))
	start := now.AddDate(0, 0, -2)

	out, err := uc.GetReport(context.Background(), dto.SalesReportFilter{StartDate: &start, EndDate: &start, CustomerID: "c1"})
	require.NoError(t, err)
	assert.Len(t, out.Sales, 1)
	assert.Equal(t, "3000.5", out.Summary.Total.String())
	assert.Equal(t, 2, out.Summary.TotalTransactions)
	assert.Equal(t, "1500.25", out.Summary.AverageTicket.String())

	require.NotNil(t, totals.from)
	require.NotNil(t, totals.to)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), *totals.from)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), *totals.to)
	assert.Equal(t, "c1", totals.customerID)
}
