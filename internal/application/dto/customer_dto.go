package dto

import (
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente. Name es obligatorio.
type CreateCustomerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateCustomerRequest parche de cliente. Las estadísticas de compra solo las cambian las ventas.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	TotalPurchases int             `json:"totalPurchases"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	LastPurchase   *string         `json:"lastPurchase"` // YYYY-MM-DD
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		TotalPurchases: c.TotalPurchases,
		TotalSpent:     c.TotalSpent,
		LastPurchase:   formatDate(c.LastPurchase),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func NewCustomerListResponse(list []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}
