package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID, Update y Delete devuelven (nil, nil) si el id no existe.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	// Update aplica fn sobre el producto actual y persiste el resultado en un solo ciclo
	// leer-modificar-escribir. Si fn devuelve error no se escribe nada.
	Update(ctx context.Context, id string, fn func(p *entity.Product) error) (*entity.Product, error)
	Delete(ctx context.Context, id string) (*entity.Product, error)
}
