package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/shopspring/decimal"
)

const salesTotalsSQL = `
SELECT COALESCE(SUM(NULLIF(data->>'total', '')::numeric), 0), COUNT(*)
FROM record_rows
WHERE tbl = $1
  AND ($2::timestamptz IS NULL OR NULLIF(data->>'date', '')::timestamptz >= $2)
  AND ($3::timestamptz IS NULL OR NULLIF(data->>'date', '')::timestamptz < $3)
  AND ($4 = '' OR data->>'customerId' = $4)`

// SalesTotals suma las ventas en NUMERIC del lado de PostgreSQL y escanea a decimal.Decimal
// mediante el codec registrado en el pool.
func (s *RecordStore) SalesTotals(ctx context.Context, from, to *time.Time, customerID string) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int64
	if err := s.pool.QueryRow(ctx, salesTotalsSQL, recordstore.Sales.Key, from, to, customerID).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, wrap("sumar", recordstore.Sales, err)
	}
	return total, int(count), nil
}
