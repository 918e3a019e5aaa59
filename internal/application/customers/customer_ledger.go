// Package customers contiene el libro de clientes y sus estadísticas de compra.
package customers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CustomerLedger casos de uso de clientes. Igual que el catálogo, un id inexistente
// produce (nil, nil).
type CustomerLedger struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerLedger construye el caso de uso.
func NewCustomerLedger(repo repository.CustomerRepository) *CustomerLedger {
	return &CustomerLedger{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (l *CustomerLedger) WithClock(now func() time.Time) *CustomerLedger {
	l.now = now
	return l
}

func (l *CustomerLedger) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := l.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerListResponse(list), nil
}

func (l *CustomerLedger) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := l.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	out := dto.NewCustomerResponse(c)
	return &out, nil
}

// Create registra un cliente con estadísticas en cero.
func (l *CustomerLedger) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	}
	now := l.now()
	c := &entity.Customer{
		ID:         id,
		Name:       name,
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		TotalSpent: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := l.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCustomerResponse(c)
	return &out, nil
}

// Update aplica el parche de datos de contacto y sella updatedAt.
func (l *CustomerLedger) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := l.repo.Update(ctx, id, func(c *entity.Customer) error {
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
			}
			c.Name = name
		}
		if in.Email != nil {
			c.Email = strings.TrimSpace(*in.Email)
		}
		if in.Phone != nil {
			c.Phone = strings.TrimSpace(*in.Phone)
		}
		c.UpdatedAt = l.now()
		return nil
	})
	if err != nil || c == nil {
		return nil, err
	}
	out := dto.NewCustomerResponse(c)
	return &out, nil
}

// UpdateStats suma una compra: totalPurchases+1, totalSpent+saleTotal, lastPurchase=hoy.
func (l *CustomerLedger) UpdateStats(ctx context.Context, id string, saleTotal decimal.Decimal) (*dto.CustomerResponse, error) {
	if saleTotal.IsNegative() {
		return nil, fmt.Errorf("%w: el total de la venta no puede ser negativo", domain.ErrInvalidInput)
	}
	c, err := l.repo.Update(ctx, id, func(c *entity.Customer) error {
		c.RecordPurchase(saleTotal, l.now())
		return nil
	})
	if err != nil || c == nil {
		return nil, err
	}
	out := dto.NewCustomerResponse(c)
	return &out, nil
}

func (l *CustomerLedger) Delete(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := l.repo.Delete(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	out := dto.NewCustomerResponse(c)
	return &out, nil
}
