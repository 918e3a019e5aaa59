package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente frecuente de la cafetería.
// TotalPurchases y TotalSpent solo crecen, y solo por ventas atribuidas al cliente.
type Customer struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	TotalPurchases int
	TotalSpent     decimal.Decimal
	LastPurchase   *time.Time // solo fecha; nil si nunca ha comprado
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RecordPurchase acumula una venta en las estadísticas del cliente.
func (c *Customer) RecordPurchase(total decimal.Decimal, at time.Time) {
	c.TotalPurchases++
	c.TotalSpent = c.TotalSpent.Add(total)
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	c.LastPurchase = &day
	c.UpdatedAt = at
}
