package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID, Update y Delete devuelven (nil, nil) si el id no existe.
type CustomerRepository interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, id string, fn func(c *entity.Customer) error) (*entity.Customer, error)
	Delete(ctx context.Context, id string) (*entity.Customer, error)
}
