// Package recordstore ofrece acceso tabular genérico (leer todo, agregar, reemplazar todo)
// sobre tablas con nombre, independiente del respaldo activo (archivo xlsx, Google Sheets,
// PostgreSQL o memoria).
package recordstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/cafe-pos/internal/domain"
)

// Row es una fila: columna -> valor tal como lo guarda el respaldo.
type Row map[string]string

// Clone devuelve una copia independiente de la fila.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table describe una tabla: clave lógica, nombre de hoja y columnas canónicas en orden.
type Table struct {
	Key     string
	Sheet   string
	Columns []string
}

// Tablas del POS.
var (
	Products = Table{
		Key:     "products",
		Sheet:   "Productos",
		Columns: []string{"id", "name", "description", "category", "price", "stock", "minStock", "image", "createdAt", "updatedAt"},
	}
	Customers = Table{
		Key:     "customers",
		Sheet:   "Clientes",
		Columns: []string{"id", "name", "email", "phone", "totalPurchases", "totalSpent", "lastPurchase", "createdAt", "updatedAt"},
	}
	Sales = Table{
		Key:     "sales",
		Sheet:   "Ventas",
		Columns: []string{"id", "customerId", "customerName", "total", "date", "createdAt"},
	}
	SaleItems = Table{
		Key:     "sale_items",
		Sheet:   "DetalleVentas",
		Columns: []string{"id", "saleId", "productId", "productName", "quantity", "price", "subtotal"},
	}
)

// Tables lista todas las tablas en el orden en que se escriben en un libro.
func Tables() []Table {
	return []Table{Products, Customers, Sales, SaleItems}
}

// Batch agrupa filas a agregar a una tabla dentro de AppendBatch.
type Batch struct {
	Table Table
	Rows  []Row
}

// Store es el contrato del almacén de registros.
// GetAll sobre una tabla inexistente devuelve una secuencia vacía.
// Todo fallo de E/S se devuelve envuelto en domain.ErrStorage.
type Store interface {
	GetAll(ctx context.Context, t Table) ([]Row, error)
	ReplaceAll(ctx context.Context, t Table, rows []Row) error
	Append(ctx context.Context, t Table, rows []Row) error
	// AppendBatch agrega filas a varias tablas en una sola escritura: o se aplican todas o ninguna.
	AppendBatch(ctx context.Context, batches []Batch) error
	// Name identifica el respaldo (xlsx, sheets, postgres, memory).
	Name() string
	Close() error
}

// storageErr envuelve un fallo de E/S como domain.ErrStorage.
func storageErr(op string, t Table, err error) error {
	return fmt.Errorf("%w: %s %s: %v", domain.ErrStorage, op, t.Sheet, err)
}

// Header calcula el encabezado a escribir: columnas canónicas primero, luego las
// columnas adicionales (existentes o presentes en las filas) ordenadas.
func Header(t Table, existing []string, rows []Row) []string {
	seen := make(map[string]bool, len(t.Columns))
	header := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		seen[c] = true
		header = append(header, c)
	}
	var extra []string
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		extra = append(extra, c)
	}
	for _, c := range existing {
		add(c)
	}
	for _, r := range rows {
		for c := range r {
			add(c)
		}
	}
	sort.Strings(extra)
	return append(header, extra...)
}

// toCells serializa una fila según el encabezado.
func toCells(header []string, r Row) []string {
	cells := make([]string, len(header))
	for i, c := range header {
		cells[i] = r[c]
	}
	return cells
}

// fromCells construye una fila a partir de celdas; las celdas faltantes quedan vacías.
func fromCells(header, cells []string) Row {
	r := make(Row, len(header))
	for i, c := range header {
		if c == "" {
			continue
		}
		if i < len(cells) {
			r[c] = cells[i]
		} else {
			r[c] = ""
		}
	}
	return r
}

// isBlank indica si todas las celdas están vacías.
func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// parseSheet convierte celdas crudas (encabezado + datos) en filas, omitiendo filas vacías.
func parseSheet(raw [][]string) []Row {
	if len(raw) == 0 {
		return []Row{}
	}
	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if isBlank(cells) {
			continue
		}
		rows = append(rows, fromCells(header, cells))
	}
	return rows
}

// renderSheet convierte filas en celdas crudas con encabezado.
func renderSheet(t Table, existingHeader []string, rows []Row) [][]string {
	header := Header(t, existingHeader, rows)
	out := make([][]string, 0, len(rows)+1)
	out = append(out, header)
	for _, r := range rows {
		out = append(out, toCells(header, r))
	}
	return out
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
