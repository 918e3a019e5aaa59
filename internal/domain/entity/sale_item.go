package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de una venta. Nombre y precio son copias del catálogo
// al momento de vender; no cambian si el producto se edita después.
type SaleItem struct {
	ID          string // <saleID>_<productID>
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// SaleItemID deriva el id de una línea desde la venta y el producto.
func SaleItemID(saleID, productID string) string {
	return saleID + "_" + productID
}

// NewSaleItem construye la línea calculando el subtotal.
func NewSaleItem(saleID, productID, productName string, quantity int, price decimal.Decimal) SaleItem {
	return SaleItem{
		ID:          SaleItemID(saleID, productID),
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Subtotal:    price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
