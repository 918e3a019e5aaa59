// Package pdf genera el tiquete de venta (80 mm) en PDF.
//
// Layout del tiquete:
//
//	┌──────────────────────────────┐
//	│  NOMBRE DEL NEGOCIO          │
//	│  Tiquete N° / Fecha          │
//	│  Cliente                     │
//	│  ──────────────────────────  │
//	│  Cant | Producto | Subtotal  │
//	│  ──────────────────────────  │
//	│  TOTAL                       │
//	│  QR (id de venta) + pie      │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/cafe-pos/internal/application/receipts"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/pkg/money"
)

const (
	ticketWidth  = 80.0 // mm
	ticketMargin = 4.0
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// ReceiptGenerator implementa receipts.Generator usando Maroto v2.
type ReceiptGenerator struct{}

var _ receipts.Generator = (*ReceiptGenerator)(nil)

func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceipt genera el tiquete y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, r receipts.Receipt) ([]byte, error) {
	// Alto proporcional a las líneas: encabezado + totales + QR ocupan ~110 mm.
	height := 110.0 + 6.0*float64(len(r.Sale.Items))

	cfg := config.NewBuilder().
		WithDimensions(ticketWidth, height).
		WithLeftMargin(ticketMargin).WithRightMargin(ticketMargin).
		WithTopMargin(ticketMargin).WithBottomMargin(ticketMargin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Tiquete "+r.Sale.ID, true).
		WithAuthor(r.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(r)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(r.Sale.Items)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalRow(r.Sale))
	m.AddRows(footerRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar tiquete: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(r receipts.Receipt) []core.Row {
	centered := props.Text{Align: align.Center, Size: 7, Color: colorGray}
	return []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(r.BusinessName, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1,
		}))),
		row.New(4).Add(col.New(12).Add(text.New("Tiquete N° "+shortID(r.Sale.ID), centered))),
		row.New(4).Add(col.New(12).Add(text.New(r.Sale.Date.Format("02/01/2006 15:04"), centered))),
		row.New(5).Add(col.New(12).Add(text.New("Cliente: "+r.Sale.CustomerName, props.Text{Size: 8, Top: 1}))),
	}
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a}))
	}
	return row.New(5).Add(
		h("Cant.", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Subtotal", 4, align.Right),
	)
}

func itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8})),
			col.New(4).Add(text.New(money.Format(it.Subtotal), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func totalRow(s *entity.Sale) core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}
	right := bold
	right.Align = align.Right
	return row.New(8).Add(
		col.New(6).Add(text.New("TOTAL", bold)),
		col.New(6).Add(text.New(money.Format(s.Total), right)),
	)
}

func footerRows(r receipts.Receipt) []core.Row {
	return []core.Row{
		row.New(4),
		row.New(30).Add(col.New(12).Add(code.NewQr(r.Sale.ID, props.Rect{Percent: 90, Center: true}))),
		row.New(6).Add(col.New(12).Add(text.New(r.Footer, props.Text{
			Style: fontstyle.Italic, Size: 8, Align: align.Center, Top: 2,
		}))),
	}
}

// shortID muestra los primeros 8 caracteres del id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
