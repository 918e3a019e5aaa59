package records

import (
	"context"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
)

var _ repository.SaleRepository = (*SaleRepository)(nil)

// SaleRepository implementa repository.SaleRepository sobre las hojas Ventas y DetalleVentas.
type SaleRepository struct {
	store *recordstore.Guard
}

func NewSaleRepository(store *recordstore.Guard) *SaleRepository {
	return &SaleRepository{store: store}
}

// Create agrega la cabecera y sus líneas en un único AppendBatch.
func (r *SaleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	items := make([]recordstore.Row, len(sale.Items))
	for i, it := range sale.Items {
		items[i] = encodeSaleItem(it)
	}
	return r.store.AppendBatch(ctx, []recordstore.Batch{
		{Table: recordstore.Sales, Rows: []recordstore.Row{encodeSale(sale)}},
		{Table: recordstore.SaleItems, Rows: items},
	})
}

// List une ventas y líneas en memoria por saleId, leyendo ambas tablas bajo el mismo candado.
func (r *SaleRepository) List(ctx context.Context) ([]*entity.Sale, error) {
	var saleRows, itemRows []recordstore.Row
	err := r.store.Run(ctx, func(s recordstore.Store) error {
		var err error
		if saleRows, err = s.GetAll(ctx, recordstore.Sales); err != nil {
			return err
		}
		itemRows, err = s.GetAll(ctx, recordstore.SaleItems)
		return err
	})
	if err != nil {
		return nil, err
	}

	itemsBySale := make(map[string][]entity.SaleItem, len(saleRows))
	for _, row := range itemRows {
		it, err := decodeSaleItem(row)
		if err != nil {
			return nil, err
		}
		itemsBySale[it.SaleID] = append(itemsBySale[it.SaleID], it)
	}

	sales := make([]*entity.Sale, 0, len(saleRows))
	for _, row := range saleRows {
		s, err := decodeSale(row)
		if err != nil {
			return nil, err
		}
		s.Items = itemsBySale[s.ID]
		if s.Items == nil {
			s.Items = []entity.SaleItem{}
		}
		sales = append(sales, s)
	}
	return sales, nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sales, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
