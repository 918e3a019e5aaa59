package records

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
)

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository implementa repository.CustomerRepository sobre la hoja Clientes.
type CustomerRepository struct {
	store *recordstore.Guard
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(store *recordstore.Guard) *CustomerRepository {
	return &CustomerRepository{store: store}
}

func (r *CustomerRepository) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.store.GetAll(ctx, recordstore.Customers)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := decodeCustomer(row)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	rows, err := r.store.GetAll(ctx, recordstore.Customers)
	if err != nil {
		return nil, err
	}
	if i := indexOf(rows, id); i >= 0 {
		return decodeCustomer(rows[i])
	}
	return nil, nil
}

// Create agrega la fila al final; falla con domain.ErrDuplicate si el id ya existe.
func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return r.store.Run(ctx, func(s recordstore.Store) error {
		rows, err := s.GetAll(ctx, recordstore.Customers)
		if err != nil {
			return err
		}
		if indexOf(rows, c.ID) >= 0 {
			return fmt.Errorf("%w: id %s", domain.ErrDuplicate, c.ID)
		}
		return s.Append(ctx, recordstore.Customers, []recordstore.Row{encodeCustomer(c, nil)})
	})
}

func (r *CustomerRepository) Update(ctx context.Context, id string, fn func(c *entity.Customer) error) (*entity.Customer, error) {
	var updated *entity.Customer
	err := r.store.Update(ctx, recordstore.Customers, func(rows []recordstore.Row) ([]recordstore.Row, bool, error) {
		i := indexOf(rows, id)
		if i < 0 {
			return rows, false, nil
		}
		c, err := decodeCustomer(rows[i])
		if err != nil {
			return nil, false, err
		}
		if err := fn(c); err != nil {
			return nil, false, err
		}
		rows[i] = encodeCustomer(c, rows[i])
		updated = c
		return rows, true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) (*entity.Customer, error) {
	var deleted *entity.Customer
	err := r.store.Update(ctx, recordstore.Customers, func(rows []recordstore.Row) ([]recordstore.Row, bool, error) {
		i := indexOf(rows, id)
		if i < 0 {
			return rows, false, nil
		}
		c, err := decodeCustomer(rows[i])
		if err != nil {
			return nil, false, err
		}
		deleted = c
		return append(rows[:i], rows[i+1:]...), true, nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
