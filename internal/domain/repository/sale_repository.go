package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// No hay actualización ni borrado: una venta registrada es inmutable.
type SaleRepository interface {
	// Create persiste la cabecera y todas las líneas en una sola escritura.
	Create(ctx context.Context, sale *entity.Sale) error
	// List devuelve las ventas en orden de registro, con sus líneas.
	List(ctx context.Context) ([]*entity.Sale, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
}
