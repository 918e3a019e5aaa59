package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInCustomerName es el nombre usado cuando la venta no tiene cliente.
const WalkInCustomerName = "Cliente General"

// Sale representa la cabecera de una venta. Una vez registrada es inmutable.
type Sale struct {
	ID           string
	CustomerID   *string // nil = cliente de paso
	CustomerName string  // copia del nombre al momento de la venta
	Items        []SaleItem
	Total        decimal.Decimal
	Date         time.Time
	CreatedAt    time.Time
}

// ComputeTotal suma los subtotales de las líneas.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}
