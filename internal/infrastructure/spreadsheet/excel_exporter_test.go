package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExport_WritesThreeSheets(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	cid := "c1"
	products := []*entity.Product{{ID: "p1", Name: "Café Americano", Category: "bebidas", Price: decimal.NewFromInt(3500), Stock: 0, MinStock: 5, CreatedAt: now, UpdatedAt: now}}
	customers := []*entity.Customer{{ID: "c1", Name: "Ana", TotalPurchases: 1, TotalSpent: decimal.NewFromInt(9500)}}
	sales := []*entity.Sale{{
		ID: "s1", CustomerID: &cid, CustomerName: "Ana", Total: decimal.NewFromInt(9500), Date: now,
		Items: []entity.SaleItem{
			entity.NewSaleItem("s1", "p1", "Café Americano", 2, decimal.NewFromInt(3500)),
			entity.NewSaleItem("s1", "p2", "Croissant", 1, decimal.NewFromInt(2500)),
		},
	}}

	data, err := NewExcelExporter().Export(products, customers, sales)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Productos", "Clientes", "Ventas"}, f.GetSheetList())

	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "items", rows[0][5])
	assert.Equal(t, "Café Americano (2), Croissant (1)", rows[1][5])

	status, err := f.GetCellValue("Productos", "H2")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusOut, status)
}

func TestExport_EmptyData(t *testing.T) {
	data, err := NewExcelExporter().Export(nil, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Clientes")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
