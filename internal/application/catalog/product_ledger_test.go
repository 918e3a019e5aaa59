package catalog_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jhoicas/cafe-pos/internal/application/catalog"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/records"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func newLedger(t *testing.T) *catalog.ProductLedger {
	t.Helper()
	repo := records.NewProductRepository(recordstore.NewGuard(recordstore.NewMemoryStore()))
	return catalog.NewProductLedger(repo, catalog.WithClock(func() time.Time { return fixedNow }))
}

func ptr[T any](v T) *T { return &v }

func createProduct(t *testing.T, l *catalog.ProductLedger, stock, minStock int) *dto.ProductResponse {
	t.Helper()
	p, err := l.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Tinto",
		Category: "bebidas",
		Price:    ptr(decimal.NewFromInt(2500)),
		Stock:    ptr(stock),
		MinStock: ptr(minStock),
	})
	require.NoError(t, err)
	return p
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	l := newLedger(t)
	p := createProduct(t, l, 10, 5)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, fixedNow, p.UpdatedAt)
	assert.Equal(t, entity.StockStatusNormal, p.StockStatus)
}

func TestCreate_DefaultMinStock(t *testing.T) {
	repo := records.NewProductRepository(recordstore.NewGuard(recordstore.NewMemoryStore()))
	l := catalog.NewProductLedger(repo, catalog.WithDefaultMinStock(8))

	p, err := l.Create(context.Background(), dto.CreateProductRequest{
		Name: "Brownie", Category: "postres", Price: ptr(decimal.NewFromInt(4000)), Stock: ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, p.MinStock)
}

func TestCreate_Validation(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	cases := map[string]dto.CreateProductRequest{
		"sin nombre":         {Category: "bebidas", Price: ptr(decimal.NewFromInt(1)), Stock: ptr(1)},
		"sin precio":         {Name: "Tinto", Category: "bebidas", Stock: ptr(1)},
		"sin stock":          {Name: "Tinto", Category: "bebidas", Price: ptr(decimal.NewFromInt(1))},
		"categoría inválida": {Name: "Tinto", Category: "licores", Price: ptr(decimal.NewFromInt(1)), Stock: ptr(1)},
		"precio negativo":    {Name: "Tinto", Category: "bebidas", Price: ptr(decimal.NewFromInt(-1)), Stock: ptr(1)},
		"stock negativo":     {Name: "Tinto", Category: "bebidas", Price: ptr(decimal.NewFromInt(1)), Stock: ptr(-1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := l.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	list, err := l.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStockStatus_ScenarioB(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	p := createProduct(t, l, 5, 10)
	assert.True(t, p.LowStock)
	assert.Equal(t, entity.StockStatusLow, p.StockStatus)

	out, err := l.AdjustStock(ctx, p.ID, 0, entity.StockModeAbsolute)
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusOut, out.Product.StockStatus)
}

func TestAdjustStock_ScenarioD(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	p := createProduct(t, l, 3, 1)

	out, err := l.AdjustStock(ctx, p.ID, 7, entity.StockModeRelative)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Product.Stock)
	assert.Equal(t, 3, out.PreviousStock)
	assert.False(t, out.Clamped)

	out, err = l.AdjustStock(ctx, p.ID, -20, entity.StockModeRelative)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Product.Stock)
	assert.True(t, out.Clamped)

	got, err := l.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestAdjustStock_Absolute(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	p := createProduct(t, l, 3, 1)

	out, err := l.AdjustStock(ctx, p.ID, 12, entity.StockModeAbsolute)
	require.NoError(t, err)
	assert.Equal(t, 12, out.Product.Stock)

	out, err = l.AdjustStock(ctx, p.ID, -4, entity.StockModeAbsolute)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Product.Stock)
	assert.True(t, out.Clamped)
}

func TestAdjustStock_OverflowIsRejected(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	p := createProduct(t, l, 3, 1)

	_, err := l.AdjustStock(ctx, p.ID, math.MaxInt, entity.StockModeRelative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := l.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestAdjustStock_InvalidModeAndNotFound(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	_, err := l.AdjustStock(ctx, "x", 1, entity.StockMode("sideways"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := l.AdjustStock(ctx, "x", 1, entity.StockModeRelative)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdate_PatchesOnlyGivenFields(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	p := createProduct(t, l, 10, 5)

	out, err := l.Update(ctx, p.ID, dto.UpdateProductRequest{Price: ptr(decimal.NewFromInt(3000))})
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "Tinto", out.Name)
	assert.Equal(t, 10, out.Stock)

	_, err = l.Update(ctx, p.ID, dto.UpdateProductRequest{Category: ptr("licores")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := l.Update(ctx, "nope", dto.UpdateProductRequest{Name: ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetAndDelete_NotFoundIsNil(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	p := createProduct(t, l, 1, 1)

	deleted, err := l.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	got, err := l.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	again, err := l.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}
