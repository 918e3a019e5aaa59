package records

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementa repository.ProductRepository sobre la hoja Productos.
type ProductRepository struct {
	store *recordstore.Guard
}

// NewProductRepository construye el repositorio.
func NewProductRepository(store *recordstore.Guard) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.store.GetAll(ctx, recordstore.Products)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := decodeProduct(row)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	rows, err := r.store.GetAll(ctx, recordstore.Products)
	if err != nil {
		return nil, err
	}
	if i := indexOf(rows, id); i >= 0 {
		return decodeProduct(rows[i])
	}
	return nil, nil
}

// Create agrega la fila al final; falla con domain.ErrDuplicate si el id ya existe.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.store.Run(ctx, func(s recordstore.Store) error {
		rows, err := s.GetAll(ctx, recordstore.Products)
		if err != nil {
			return err
		}
		if indexOf(rows, p.ID) >= 0 {
			return fmt.Errorf("%w: id %s", domain.ErrDuplicate, p.ID)
		}
		return s.Append(ctx, recordstore.Products, []recordstore.Row{encodeProduct(p, nil)})
	})
}

func (r *ProductRepository) Update(ctx context.Context, id string, fn func(p *entity.Product) error) (*entity.Product, error) {
	var updated *entity.Product
	err := r.store.Update(ctx, recordstore.Products, func(rows []recordstore.Row) ([]recordstore.Row, bool, error) {
		i := indexOf(rows, id)
		if i < 0 {
			return rows, false, nil
		}
		p, err := decodeProduct(rows[i])
		if err != nil {
			return nil, false, err
		}
		if err := fn(p); err != nil {
			return nil, false, err
		}
		rows[i] = encodeProduct(p, rows[i])
		updated = p
		return rows, true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*entity.Product, error) {
	var deleted *entity.Product
	err := r.store.Update(ctx, recordstore.Products, func(rows []recordstore.Row) ([]recordstore.Row, bool, error) {
		i := indexOf(rows, id)
		if i < 0 {
			return rows, false, nil
		}
		p, err := decodeProduct(rows[i])
		if err != nil {
			return nil, false, err
		}
		deleted = p
		return append(rows[:i], rows[i+1:]...), true, nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// indexOf devuelve la posición de la primera fila con el id dado, o -1.
func indexOf(rows []recordstore.Row, id string) int {
	for i, row := range rows {
		if row["id"] == id {
			return i
		}
	}
	return -1
}
