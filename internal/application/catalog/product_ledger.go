// Package catalog contiene el libro de productos: CRUD y ajuste de stock.
package catalog

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
)

// ProductLedger casos de uso del catálogo. Las operaciones que reciben un id devuelven
// (nil, nil) cuando el producto no existe; el llamador decide si es un error.
type ProductLedger struct {
	repo            repository.ProductRepository
	defaultMinStock int
	now             func() time.Time
}

// Option ajusta el ledger al construirlo.
type Option func(*ProductLedger)

// WithDefaultMinStock define el stock mínimo para productos creados sin él.
func WithDefaultMinStock(n int) Option {
	return func(l *ProductLedger) { l.defaultMinStock = n }
}

// WithClock reemplaza el reloj (pruebas).
func WithClock(now func() time.Time) Option {
	return func(l *ProductLedger) { l.now = now }
}

// NewProductLedger construye el caso de uso.
func NewProductLedger(repo repository.ProductRepository, opts ...Option) *ProductLedger {
	l := &ProductLedger{repo: repo, defaultMinStock: entity.DefaultMinStock, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// List devuelve el catálogo completo en orden de registro.
func (l *ProductLedger) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := l.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// Get obtiene un producto por ID.
func (l *ProductLedger) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := l.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// Create valida y agrega un producto. Asigna id si no viene y sella createdAt/updatedAt.
func (l *ProductLedger) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.Category == "" || in.Price == nil || in.Stock == nil {
		return nil, fmt.Errorf("%w: nombre, categoría, precio y stock son obligatorios", domain.ErrInvalidInput)
	}
	minStock := l.defaultMinStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	}
	now := l.now()
	p := &entity.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Price:       *in.Price,
		Stock:       *in.Stock,
		MinStock:    minStock,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := l.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// Update aplica el parche (merge superficial: solo los campos presentes) y sella updatedAt.
func (l *ProductLedger) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := l.repo.Update(ctx, id, func(p *entity.Product) error {
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.Stock != nil {
			p.Stock = *in.Stock
		}
		if in.MinStock != nil {
			p.MinStock = *in.MinStock
		}
		if in.Image != nil {
			p.Image = *in.Image
		}
		if err := validate(p); err != nil {
			return err
		}
		p.UpdatedAt = l.now()
		return nil
	})
	if err != nil || p == nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// AdjustStock cambia el stock en modo absoluto o relativo, con piso en cero.
// Un sobre-descuento no es error: se aplica el piso y se informa con Clamped.
func (l *ProductLedger) AdjustStock(ctx context.Context, id string, delta int, mode entity.StockMode) (*dto.StockAdjustmentResponse, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: modo de stock %q", domain.ErrInvalidInput, mode)
	}
	var previous int
	var clamped bool
	p, err := l.repo.Update(ctx, id, func(p *entity.Product) error {
		previous = p.Stock
		next, c, err := entity.ApplyStock(p.Stock, delta, mode)
		if err != nil {
			return err
		}
		p.Stock, clamped = next, c
		p.UpdatedAt = l.now()
		return nil
	})
	if err != nil || p == nil {
		return nil, err
	}
	return &dto.StockAdjustmentResponse{
		Product:       dto.NewProductResponse(p),
		PreviousStock: previous,
		Delta:         delta,
		Mode:          mode,
		Clamped:       clamped,
	}, nil
}

// Delete elimina el producto y lo devuelve.
func (l *ProductLedger) Delete(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := l.repo.Delete(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

func validate(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	case !entity.IsValidCategory(p.Category):
		return fmt.Errorf("%w: categoría %q no válida", domain.ErrInvalidInput, p.Category)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	case p.MinStock < 0:
		return fmt.Errorf("%w: el stock mínimo no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
