package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/shopspring/decimal"
)

// Estados de stock mostrados en el POS.
const (
	StockStatusOut    = "Agotado"
	StockStatusLow    = "Stock Bajo"
	StockStatusNormal = "Normal"
)

// DefaultMinStock se usa cuando un producto se crea sin stock mínimo.
const DefaultMinStock = 5

// Product representa un producto del catálogo de la cafetería.
// Stock nunca es negativo; solo baja por ventas o por corrección explícita.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta, no negativo
	Stock       int
	MinStock    int
	Image       string // referencia opcional (URL o ruta)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// StockStatus devuelve Agotado, Stock Bajo o Normal.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock <= 0:
		return StockStatusOut
	case p.IsLowStock():
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// StockMode define cómo se interpreta el delta de un ajuste de stock.
type StockMode string

const (
	// StockModeAbsolute toma el delta como el nuevo stock.
	StockModeAbsolute StockMode = "absolute"
	// StockModeRelative suma el delta al stock actual.
	StockModeRelative StockMode = "relative"
)

// Valid indica si el modo es conocido.
func (m StockMode) Valid() bool {
	return m == StockModeAbsolute || m == StockModeRelative
}

// ApplyStock calcula el nuevo stock según el modo, con piso en cero.
// clamped es true cuando el resultado sin piso habría sido negativo.
// Un delta relativo que desborda int se rechaza con domain.ErrInvalidInput.
func ApplyStock(current, delta int, mode StockMode) (next int, clamped bool, err error) {
	next = delta
	if mode == StockModeRelative {
		if (delta > 0 && current > math.MaxInt-delta) || (delta < 0 && current < math.MinInt-delta) {
			return current, false, fmt.Errorf("%w: el ajuste %d desborda el stock actual %d", domain.ErrInvalidInput, delta, current)
		}
		next = current + delta
	}
	if next < 0 {
		return 0, true, nil
	}
	return next, false, nil
}
