package records

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard() *recordstore.Guard {
	return recordstore.NewGuard(recordstore.NewMemoryStore())
}

func TestProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newGuard())
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	p := &entity.Product{
		ID: "p1", Name: "Tinto", Category: "bebidas",
		Price: decimal.RequireFromString("2500.50"), Stock: 10, MinStock: 5,
		CreatedAt: created, UpdatedAt: created,
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.ErrorIs(t, repo.Create(ctx, p), domain.ErrDuplicate)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(p.Price))
	assert.Equal(t, 10, got.Stock)
	assert.True(t, got.CreatedAt.Equal(created))

	updated, err := repo.Update(ctx, "p1", func(p *entity.Product) error {
		p.Stock = 3
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)

	missing, err := repo.Update(ctx, "nope", func(*entity.Product) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, 3, deleted.Stock)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	gone, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestProductRepository_UpdateKeepsUnknownColumns(t *testing.T) {
	ctx := context.Background()
	g := newGuard()
	require.NoError(t, g.ReplaceAll(ctx, recordstore.Products, []recordstore.Row{
		{"id": "p1", "name": "Tinto", "category": "bebidas", "price": "2500", "stock": "5.0", "minStock": "2", "proveedor": "Finca"},
	}))
	repo := NewProductRepository(g)

	_, err := repo.Update(ctx, "p1", func(p *entity.Product) error {
		assert.Equal(t, 5, p.Stock, "5.0 se lee como entero")
		p.Stock = 4
		return nil
	})
	require.NoError(t, err)

	rows, err := g.GetAll(ctx, recordstore.Products)
	require.NoError(t, err)
	assert.Equal(t, "Finca", rows[0]["proveedor"])
	assert.Equal(t, "4", rows[0]["stock"])
}

func TestProductRepository_CorruptRowIsStorageError(t *testing.T) {
	ctx := context.Background()
	g := newGuard()
	require.NoError(t, g.ReplaceAll(ctx, recordstore.Products, []recordstore.Row{
		{"id": "p1", "name": "Tinto", "price": "dos mil"},
	}))

	_, err := NewProductRepository(g).List(ctx)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 0},
		{in: " 12 ", want: 12},
		{in: "5.0", want: 5},
		{in: "-3", want: -3},
		{in: "5.7", wantErr: true},
		{in: "cinco", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseInt(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProductRepository_FractionalStockIsStorageError(t *testing.T) {
	ctx := context.Background()
	g := newGuard()
	require.NoError(t, g.ReplaceAll(ctx, recordstore.Products, []recordstore.Row{
		{"id": "p1", "name": "Tinto", "category": "bebidas", "price": "2500", "stock": "5.7"},
	}))

	_, err := NewProductRepository(g).List(ctx)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestCustomerRepository_LastPurchaseIsDateOnly(t *testing.T) {
	ctx := context.Background()
	g := newGuard()
	repo := NewCustomerRepository(g)
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "c1", Name: "Ana", TotalSpent: decimal.Zero}))

	at := time.Date(2024, 3, 9, 18, 45, 0, 0, time.UTC)
	_, err := repo.Update(ctx, "c1", func(c *entity.Customer) error {
		c.RecordPurchase(decimal.NewFromInt(2000), at)
		return nil
	})
	require.NoError(t, err)

	rows, err := g.GetAll(ctx, recordstore.Customers)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", rows[0]["lastPurchase"])
	assert.Equal(t, "1", rows[0]["totalPurchases"])
	assert.Equal(t, "2000", rows[0]["totalSpent"])

	c, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, c.LastPurchase)
	assert.Equal(t, "2024-03-09", c.LastPurchase.Format(time.DateOnly))
}

func TestSaleRepository_CreateAndJoin(t *testing.T) {
	ctx := context.Background()
	g := newGuard()
	repo := NewSaleRepository(g)
	customer := "c1"
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	withItems := &entity.Sale{ID: "s1", CustomerID: &customer, CustomerName: "Ana", Date: at, CreatedAt: at}
	withItems.Items = []entity.SaleItem{
		entity.NewSaleItem("s1", "p1", "Tinto", 2, decimal.NewFromInt(2500)),
		entity.NewSaleItem("s1", "p2", "Agua", 1, decimal.NewFromInt(4500)),
	}
	withItems.Total = withItems.ComputeTotal()
	require.NoError(t, repo.Create(ctx, withItems))

	walkIn := &entity.Sale{ID: "s2", CustomerName: entity.WalkInCustomerName, Total: decimal.Zero, Date: at, CreatedAt: at}
	require.NoError(t, repo.Create(ctx, walkIn))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Len(t, list[0].Items, 2)
	assert.Equal(t, "s1_p1", list[0].Items[0].ID)
	assert.True(t, list[0].Total.Equal(decimal.NewFromInt(9500)))
	require.NotNil(t, list[0].CustomerID)
	assert.Equal(t, "c1", *list[0].CustomerID)

	assert.Nil(t, list[1].CustomerID)
	assert.NotNil(t, list[1].Items)
	assert.Empty(t, list[1].Items)

	got, err := repo.GetByID(ctx, "s2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.WalkInCustomerName, got.CustomerName)

	none, err := repo.GetByID(ctx, "s9")
	require.NoError(t, err)
	assert.Nil(t, none)
}
