package dto

import (
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Name, Category, Price y Stock son obligatorios.
type CreateProductRequest struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"minStock"`
	Image       string           `json:"image"`
}

// UpdateProductRequest parche de producto: solo se reemplazan los campos presentes.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"minStock"`
	Image       *string          `json:"image"`
}

// StockRequest entrada de PUT /api/products/:id/stock.
// Con solo Stock se fija el valor absoluto; con Delta y Mode "relative" se suma al actual.
type StockRequest struct {
	Stock *int   `json:"stock"`
	Delta *int   `json:"delta"`
	Mode  string `json:"mode"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Image       string          `json:"image"`
	StockStatus string          `json:"stockStatus"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// StockAdjustmentResponse resultado de un ajuste de stock.
type StockAdjustmentResponse struct {
	Product       ProductResponse  `json:"product"`
	PreviousStock int              `json:"previousStock"`
	Delta         int              `json:"delta"`
	Mode          entity.StockMode `json:"mode"`
	// Clamped indica que el resultado se llevó a cero para no quedar negativo.
	Clamped bool `json:"clamped"`
}

// NewProductResponse mapea la entidad a su salida.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Image:       p.Image,
		StockStatus: p.StockStatus(),
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductListResponse mapea una lista de productos.
func NewProductListResponse(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
