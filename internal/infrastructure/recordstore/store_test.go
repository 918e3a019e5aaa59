package recordstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Row {
	return []Row{
		{"id": "p1", "name": "Tinto", "category": "bebidas", "price": "2500", "stock": "10", "minStock": "5"},
		{"id": "p2", "name": "Empanada", "category": "snacks", "price": "3500.50", "stock": "0", "minStock": "3", "notas": "hecha en casa"},
	}
}

// backends devuelve cada respaldo local recién creado.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	x, err := NewXLSXStore(filepath.Join(t.TempDir(), "data", "cafe.xlsx"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"xlsx":   x,
	}
}

func TestHeader_CanonicalFirstThenSortedExtras(t *testing.T) {
	h := Header(SaleItems, []string{"id", "zeta"}, []Row{{"alfa": "1", "id": "x"}})
	assert.Equal(t, append(append([]string{}, SaleItems.Columns...), "alfa", "zeta"), h)
}

func TestParseSheet_SkipsBlankRowsAndFillsMissingCells(t *testing.T) {
	rows := parseSheet([][]string{
		{"id", "name", "stock"},
		{"p1", "Tinto"},
		{"", "", ""},
		{"p2", "Agua", "4"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"id": "p1", "name": "Tinto", "stock": ""}, rows[0])
	assert.Equal(t, "4", rows[1]["stock"])
}

func TestStore_MissingTableReadsEmpty(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rows, err := s.GetAll(context.Background(), Sales)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestStore_ReplaceAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.ReplaceAll(ctx, Products, sampleProducts()))

			got, err := s.GetAll(ctx, Products)
			require.NoError(t, err)
			require.Len(t, got, 2)
			for i, want := range sampleProducts() {
				for k, v := range want {
					assert.Equal(t, v, got[i][k], "columna %s", k)
				}
			}
			// La columna desconocida se conserva.
			assert.Equal(t, "hecha en casa", got[1]["notas"])
		})
	}
}

func TestStore_ReplaceAllWithOwnContentIsNoOp(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.ReplaceAll(ctx, Products, sampleProducts()))
			before, err := s.GetAll(ctx, Products)
			require.NoError(t, err)

			require.NoError(t, s.ReplaceAll(ctx, Products, before))
			after, err := s.GetAll(ctx, Products)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Append(ctx, Customers, []Row{{"id": "c1", "name": "Ana"}}))
			require.NoError(t, s.Append(ctx, Customers, []Row{{"id": "c2", "name": "Luis"}, {"id": "c3", "name": "Sara"}}))

			rows, err := s.GetAll(ctx, Customers)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, []string{"c1", "c2", "c3"}, []string{rows[0]["id"], rows[1]["id"], rows[2]["id"]})
		})
	}
}

func TestStore_AppendBatchWritesEveryTable(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.AppendBatch(ctx, []Batch{
				{Table: Sales, Rows: []Row{{"id": "s1", "customerName": "Cliente General", "total": "9500"}}},
				{Table: SaleItems, Rows: []Row{
					{"id": "s1_p1", "saleId": "s1", "productId": "p1", "quantity": "2", "price": "2500", "subtotal": "5000"},
					{"id": "s1_p2", "saleId": "s1", "productId": "p2", "quantity": "1", "price": "4500", "subtotal": "4500"},
				}},
			})
			require.NoError(t, err)

			sales, err := s.GetAll(ctx, Sales)
			require.NoError(t, err)
			items, err := s.GetAll(ctx, SaleItems)
			require.NoError(t, err)
			assert.Len(t, sales, 1)
			assert.Len(t, items, 2)
			assert.Equal(t, "9500", sales[0]["total"])
		})
	}
}

func TestXLSXStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cafe.xlsx")
	s, err := NewXLSXStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceAll(ctx, Products, sampleProducts()))

	reopened, err := NewXLSXStore(path)
	require.NoError(t, err)
	rows, err := reopened.GetAll(ctx, Products)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "3500.50", rows[1]["price"])
}

func TestXLSXStore_UnreadableFileIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafe.xlsx")
	s, err := NewXLSXStore(path)
	require.NoError(t, err)
	s.path = filepath.Join(t.TempDir(), "no-existe", "cafe.xlsx")

	_, err = s.GetAll(context.Background(), Products)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestGuard_UpdateIsSerialized(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(NewMemoryStore())
	require.NoError(t, g.ReplaceAll(ctx, Products, []Row{{"id": "p1", "stock": "0"}}))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := g.Update(ctx, Products, func(rows []Row) ([]Row, bool, error) {
				var n int
				_, _ = fmt.Sscanf(rows[0]["stock"], "%d", &n)
				rows[0]["stock"] = fmt.Sprint(n + 1)
				return rows, true, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := g.GetAll(ctx, Products)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(writers), rows[0]["stock"])
}

func TestGuard_UpdateErrorLeavesTableUntouched(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(NewMemoryStore())
	require.NoError(t, g.ReplaceAll(ctx, Products, sampleProducts()))

	boom := errors.New("boom")
	err := g.Update(ctx, Products, func(rows []Row) ([]Row, bool, error) {
		rows[0]["name"] = "cambiado"
		return nil, false, boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err := g.GetAll(ctx, Products)
	require.NoError(t, err)
	assert.Equal(t, "Tinto", rows[0]["name"])
}

func TestGuard_WaitHonoursContext(t *testing.T) {
	g := NewGuard(NewMemoryStore())
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = g.Run(context.Background(), func(Store) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.GetAll(ctx, Products)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
