package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
)

// RecordStore implementa recordstore.Store sobre la tabla record_rows:
// una fila JSONB por registro, ordenada por pos dentro de cada tabla lógica.
type RecordStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

var _ recordstore.Store = (*RecordStore)(nil)

// NewRecordStore construye el respaldo. Las migraciones deben estar aplicadas.
func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool, tx: NewTxRunner(pool)}
}

func (s *RecordStore) GetAll(ctx context.Context, t recordstore.Table) ([]recordstore.Row, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM record_rows WHERE tbl = $1 ORDER BY pos`, t.Key)
	if err != nil {
		return nil, wrap("leer", t, err)
	}
	data, err := pgx.CollectRows(rows, pgx.RowTo[map[string]string])
	if err != nil {
		return nil, wrap("leer", t, err)
	}
	out := make([]recordstore.Row, len(data))
	for i, d := range data {
		out[i] = recordstore.Row(d)
	}
	return out, nil
}

func (s *RecordStore) ReplaceAll(ctx context.Context, t recordstore.Table, rows []recordstore.Row) error {
	err := s.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM record_rows WHERE tbl = $1`, t.Key); err != nil {
			return err
		}
		return insertRows(ctx, tx, t, 0, rows)
	})
	if err != nil {
		return wrap("reemplazar", t, err)
	}
	return nil
}

func (s *RecordStore) Append(ctx context.Context, t recordstore.Table, rows []recordstore.Row) error {
	return s.AppendBatch(ctx, []recordstore.Batch{{Table: t, Rows: rows}})
}

// AppendBatch inserta las filas de todas las tablas en una sola transacción.
func (s *RecordStore) AppendBatch(ctx context.Context, batches []recordstore.Batch) error {
	if len(batches) == 0 {
		return nil
	}
	err := s.tx.Run(ctx, func(tx pgx.Tx) error {
		for _, b := range batches {
			var last int64
			if err := tx.QueryRow(ctx,
				`SELECT COALESCE(MAX(pos), 0) FROM record_rows WHERE tbl = $1`, b.Table.Key,
			).Scan(&last); err != nil {
				return err
			}
			if err := insertRows(ctx, tx, b.Table, last, b.Rows); err != nil {
				return err
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: otro proceso agregó filas a %s al mismo tiempo", domain.ErrStorage, batches[0].Table.Sheet)
	}
	if err != nil {
		return wrap("agregar", batches[0].Table, err)
	}
	return nil
}

func (s *RecordStore) Name() string { return "postgres" }

func (s *RecordStore) Close() error {
	s.pool.Close()
	return nil
}

func insertRows(ctx context.Context, tx pgx.Tx, t recordstore.Table, offset int64, rows []recordstore.Row) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, r := range rows {
		batch.Queue(`INSERT INTO record_rows (tbl, pos, data) VALUES ($1, $2, $3)`,
			t.Key, offset+int64(i)+1, map[string]string(r))
	}
	return tx.SendBatch(ctx, batch).Close()
}

func wrap(op string, t recordstore.Table, err error) error {
	return fmt.Errorf("%w: %s %s: %v", domain.ErrStorage, op, t.Sheet, err)
}
