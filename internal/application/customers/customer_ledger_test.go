package customers_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/cafe-pos/internal/application/customers"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/records"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 2, 20, 16, 5, 0, 0, time.UTC)

func setup(t *testing.T) (*customers.CustomerLedger, *records.CustomerRepository) {
	t.Helper()
	repo := records.NewCustomerRepository(recordstore.NewGuard(recordstore.NewMemoryStore()))
	return customers.NewCustomerLedger(repo).WithClock(func() time.Time { return today }), repo
}

func TestCreate_StartsWithZeroStats(t *testing.T) {
	l, _ := setup(t)
	c, err := l.Create(context.Background(), dto.CreateCustomerRequest{Name: "  Ana  ", Email: "ana@correo.co"})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, 0, c.TotalPurchases)
	assert.True(t, c.TotalSpent.IsZero())
	assert.Nil(t, c.LastPurchase)
}

func TestCreate_RequiresName(t *testing.T) {
	l, _ := setup(t)
	_, err := l.Create(context.Background(), dto.CreateCustomerRequest{Email: "x@y.z"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStats_ScenarioC(t *testing.T) {
	l, repo := setup(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Customer{
		ID: "c1", Name: "Ana", TotalPurchases: 3, TotalSpent: decimal.NewFromInt(15000),
	}))

	out, err := l.UpdateStats(ctx, "c1", decimal.NewFromInt(2000))
	require.NoError(t, err)
	assert.Equal(t, 4, out.TotalPurchases)
	assert.True(t, out.TotalSpent.Equal(decimal.NewFromInt(17000)))
	require.NotNil(t, out.LastPurchase)
	assert.Equal(t, "2024-02-20", *out.LastPurchase)
}

func TestUpdateStats_NegativeTotalAndUnknownCustomer(t *testing.T) {
	l, _ := setup(t)
	ctx := context.Background()

	_, err := l.UpdateStats(ctx, "c1", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := l.UpdateStats(ctx, "c1", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdate_ContactDataOnly(t *testing.T) {
	l, _ := setup(t)
	ctx := context.Background()
	c, err := l.Create(ctx, dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	_, err = l.UpdateStats(ctx, c.ID, decimal.NewFromInt(500))
	require.NoError(t, err)

	phone := "3001234567"
	out, err := l.Update(ctx, c.ID, dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, out.Phone)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, 1, out.TotalPurchases)

	empty := " "
	_, err = l.Update(ctx, c.ID, dto.UpdateCustomerRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	l, _ := setup(t)
	ctx := context.Background()
	c, err := l.Create(ctx, dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)

	deleted, err := l.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.ID)

	got, err := l.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
