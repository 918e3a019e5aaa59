package recordstore

import (
	"context"
	"fmt"
)

// Guard serializa todas las operaciones sobre un Store con un único escritor.
// Sin él, dos ciclos leer-modificar-escribir concurrentes pierden actualizaciones
// (el último en escribir la tabla completa gana).
type Guard struct {
	store Store
	sem   chan struct{}
}

var _ Store = (*Guard)(nil)

// NewGuard envuelve el store con el candado de escritor único.
func NewGuard(store Store) *Guard {
	return &Guard{store: store, sem: make(chan struct{}, 1)}
}

func (g *Guard) acquire(ctx context.Context) error {
	select {
	case g.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("esperando el almacén: %w", ctx.Err())
	}
}

func (g *Guard) release() { <-g.sem }

// Run ejecuta fn con acceso exclusivo al store.
func (g *Guard) Run(ctx context.Context, fn func(s Store) error) error {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()
	return fn(g.store)
}

// Update ejecuta un ciclo leer-modificar-escribir sobre una tabla. Si fn devuelve error,
// la tabla no se escribe. Si fn devuelve las mismas filas sin cambios (changed=false) tampoco.
func (g *Guard) Update(ctx context.Context, t Table, fn func(rows []Row) (next []Row, changed bool, err error)) error {
	return g.Run(ctx, func(s Store) error {
		rows, err := s.GetAll(ctx, t)
		if err != nil {
			return err
		}
		next, changed, err := fn(rows)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return s.ReplaceAll(ctx, t, next)
	})
}

func (g *Guard) GetAll(ctx context.Context, t Table) ([]Row, error) {
	var rows []Row
	err := g.Run(ctx, func(s Store) error {
		var err error
		rows, err = s.GetAll(ctx, t)
		return err
	})
	return rows, err
}

func (g *Guard) ReplaceAll(ctx context.Context, t Table, rows []Row) error {
	return g.Run(ctx, func(s Store) error { return s.ReplaceAll(ctx, t, rows) })
}

func (g *Guard) Append(ctx context.Context, t Table, rows []Row) error {
	return g.Run(ctx, func(s Store) error { return s.Append(ctx, t, rows) })
}

func (g *Guard) AppendBatch(ctx context.Context, batches []Batch) error {
	return g.Run(ctx, func(s Store) error { return s.AppendBatch(ctx, batches) })
}

func (g *Guard) Name() string { return g.store.Name() }

func (g *Guard) Close() error { return g.store.Close() }
