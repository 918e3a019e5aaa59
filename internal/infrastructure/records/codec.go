// Package records implementa los repositorios del dominio sobre el almacén de registros,
// traduciendo entidades a filas de texto y viceversa.
package records

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
	dateLayout      = time.DateOnly
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateLayout, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	// Hojas editadas a mano pueden traer "5.0"; "5.7" no es un entero.
	d, err := decimal.NewFromString(s)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("entero inválido %q", s)
	}
	return int(d.IntPart()), nil
}

// rowErr envuelve un error de decodificación como fallo de almacenamiento.
func rowErr(t recordstore.Table, r recordstore.Row, err error) error {
	return fmt.Errorf("%w: fila %s de %s: %v", domain.ErrStorage, r["id"], t.Sheet, err)
}

// decoder acumula el primer error de conversión de una fila.
type decoder struct {
	row recordstore.Row
	err error
}

func (d *decoder) str(col string) string { return d.row[col] }

func (d *decoder) decimal(col string) decimal.Decimal {
	v, err := parseDecimal(d.row[col])
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func (d *decoder) int(col string) int {
	v, err := parseInt(d.row[col])
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func (d *decoder) time(col string) time.Time {
	v, err := parseTime(d.row[col])
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func decodeProduct(r recordstore.Row) (*entity.Product, error) {
	d := decoder{row: r}
	p := &entity.Product{
		ID:          d.str("id"),
		Name:        d.str("name"),
		Description: d.str("description"),
		Category:    d.str("category"),
		Price:       d.decimal("price"),
		Stock:       d.int("stock"),
		MinStock:    d.int("minStock"),
		Image:       d.str("image"),
		CreatedAt:   d.time("createdAt"),
		UpdatedAt:   d.time("updatedAt"),
	}
	if d.err != nil {
		return nil, rowErr(recordstore.Products, r, d.err)
	}
	return p, nil
}

// encodeProduct escribe el producto sobre base, conservando columnas desconocidas.
func encodeProduct(p *entity.Product, base recordstore.Row) recordstore.Row {
	r := base.Clone()
	r["id"] = p.ID
	r["name"] = p.Name
	r["description"] = p.Description
	r["category"] = p.Category
	r["price"] = p.Price.String()
	r["stock"] = strconv.Itoa(p.Stock)
	r["minStock"] = strconv.Itoa(p.MinStock)
	r["image"] = p.Image
	r["createdAt"] = formatTime(p.CreatedAt)
	r["updatedAt"] = formatTime(p.UpdatedAt)
	return r
}

func decodeCustomer(r recordstore.Row) (*entity.Customer, error) {
	d := decoder{row: r}
	c := &entity.Customer{
		ID:             d.str("id"),
		Name:           d.str("name"),
		Email:          d.str("email"),
		Phone:          d.str("phone"),
		TotalPurchases: d.int("totalPurchases"),
		TotalSpent:     d.decimal("totalSpent"),
		CreatedAt:      d.time("createdAt"),
		UpdatedAt:      d.time("updatedAt"),
	}
	if last := d.time("lastPurchase"); !last.IsZero() {
		c.LastPurchase = &last
	}
	if d.err != nil {
		return nil, rowErr(recordstore.Customers, r, d.err)
	}
	return c, nil
}

func encodeCustomer(c *entity.Customer, base recordstore.Row) recordstore.Row {
	r := base.Clone()
	r["id"] = c.ID
	r["name"] = c.Name
	r["email"] = c.Email
	r["phone"] = c.Phone
	r["totalPurchases"] = strconv.Itoa(c.TotalPurchases)
	r["totalSpent"] = c.TotalSpent.String()
	r["lastPurchase"] = ""
	if c.LastPurchase != nil {
		r["lastPurchase"] = c.LastPurchase.Format(dateLayout)
	}
	r["createdAt"] = formatTime(c.CreatedAt)
	r["updatedAt"] = formatTime(c.UpdatedAt)
	return r
}

func decodeSale(r recordstore.Row) (*entity.Sale, error) {
	d := decoder{row: r}
	s := &entity.Sale{
		ID:           d.str("id"),
		CustomerName: d.str("customerName"),
		Total:        d.decimal("total"),
		Date:         d.time("date"),
		CreatedAt:    d.time("createdAt"),
	}
	if id := strings.TrimSpace(d.str("customerId")); id != "" {
		s.CustomerID = &id
	}
	if d.err != nil {
		return nil, rowErr(recordstore.Sales, r, d.err)
	}
	return s, nil
}

func encodeSale(s *entity.Sale) recordstore.Row {
	customerID := ""
	if s.CustomerID != nil {
		customerID = *s.CustomerID
	}
	return recordstore.Row{
		"id":           s.ID,
		"customerId":   customerID,
		"customerName": s.CustomerName,
		"total":        s.Total.String(),
		"date":         formatTime(s.Date),
		"createdAt":    formatTime(s.CreatedAt),
	}
}

func decodeSaleItem(r recordstore.Row) (entity.SaleItem, error) {
	d := decoder{row: r}
	it := entity.SaleItem{
		ID:          d.str("id"),
		SaleID:      d.str("saleId"),
		ProductID:   d.str("productId"),
		ProductName: d.str("productName"),
		Quantity:    d.int("quantity"),
		Price:       d.decimal("price"),
		Subtotal:    d.decimal("subtotal"),
	}
	if d.err != nil {
		return entity.SaleItem{}, rowErr(recordstore.SaleItems, r, d.err)
	}
	return it, nil
}

func encodeSaleItem(it entity.SaleItem) recordstore.Row {
	return recordstore.Row{
		"id":          it.ID,
		"saleId":      it.SaleID,
		"productId":   it.ProductID,
		"productName": it.ProductName,
		"quantity":    strconv.Itoa(it.Quantity),
		"price":       it.Price.String(),
		"subtotal":    it.Subtotal.String(),
	}
}
