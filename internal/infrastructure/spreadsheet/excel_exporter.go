// Package spreadsheet genera libros Excel de exportación para el operador.
package spreadsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// ExcelExporter arma el libro de exportación: Productos, Clientes y Ventas
// (las líneas de cada venta van aplanadas en una columna "items").
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

type sheet struct {
	name   string
	header []string
	rows   [][]interface{}
}

// Export devuelve el contenido .xlsx.
func (e *ExcelExporter) Export(products []*entity.Product, customers []*entity.Customer, sales []*entity.Sale) ([]byte, error) {
	sheets := []sheet{
		productsSheet(products),
		customersSheet(customers),
		salesSheet(sales),
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, fmt.Errorf("hoja %s: %w", s.name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("generar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(s.header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(s.name, "A", lastCol, 18); err != nil {
		return err
	}
	for i, r := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func productsSheet(list []*entity.Product) sheet {
	s := sheet{
		name:   "Productos",
		header: []string{"id", "name", "description", "category", "price", "stock", "minStock", "stockStatus", "image", "createdAt", "updatedAt"},
	}
	for _, p := range list {
		s.rows = append(s.rows, []interface{}{
			p.ID, p.Name, p.Description, p.Category, p.Price.InexactFloat64(), p.Stock, p.MinStock,
			p.StockStatus(), p.Image, stamp(p.CreatedAt), stamp(p.UpdatedAt),
		})
	}
	return s
}

func customersSheet(list []*entity.Customer) sheet {
	s := sheet{
		name:   "Clientes",
		header: []string{"id", "name", "email", "phone", "totalPurchases", "totalSpent", "lastPurchase", "createdAt", "updatedAt"},
	}
	for _, c := range list {
		last := ""
		if c.LastPurchase != nil {
			last = c.LastPurchase.Format(time.DateOnly)
		}
		s.rows = append(s.rows, []interface{}{
			c.ID, c.Name, c.Email, c.Phone, c.TotalPurchases, c.TotalSpent.InexactFloat64(), last,
			stamp(c.CreatedAt), stamp(c.UpdatedAt),
		})
	}
	return s
}

func salesSheet(list []*entity.Sale) sheet {
	s := sheet{
		name:   "Ventas",
		header: []string{"id", "date", "customerId", "customerName", "total", "items"},
	}
	for _, sale := range list {
		customerID := ""
		if sale.CustomerID != nil {
			customerID = *sale.CustomerID
		}
		s.rows = append(s.rows, []interface{}{
			sale.ID, stamp(sale.Date), customerID, sale.CustomerName, sale.Total.InexactFloat64(), FlattenItems(sale.Items),
		})
	}
	return s
}

// FlattenItems resume las líneas como "Nombre (cantidad), ...".
func FlattenItems(items []entity.SaleItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s (%d)", it.ProductName, it.Quantity)
	}
	return strings.Join(parts, ", ")
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
