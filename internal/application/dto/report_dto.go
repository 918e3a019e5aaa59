package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardDTO respuesta de GET /api/reports/dashboard.
type DashboardDTO struct {
	TodaySales        decimal.Decimal   `json:"todaySales"`
	TodayTransactions int               `json:"todayTransactions"`
	TotalProducts     int               `json:"totalProducts"`
	LowStockItems     int               `json:"lowStockItems"`
	TotalCustomers    int               `json:"totalCustomers"`
	RecentSales       []SaleResponse    `json:"recentSales"` // últimas 5, la más reciente primero
	LowStockProducts  []ProductResponse `json:"lowStockProducts"`
}

// SalesReportFilter filtros de GET /api/reports/sales. Las fechas son días completos inclusivos.
type SalesReportFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID string
}

// SalesReportDTO respuesta de GET /api/reports/sales.
type SalesReportDTO struct {
	Sales   []SaleResponse  `json:"sales"`
	Summary SalesSummaryDTO `json:"summary"`
}

// SalesSummaryDTO totales del reporte.
type SalesSummaryDTO struct {
	Total             decimal.Decimal `json:"total"`
	TotalTransactions int             `json:"totalTransactions"`
	AverageTicket     decimal.Decimal `json:"averageTicket"`
}

// BackupResponse respuesta de POST /api/backup.
type BackupResponse struct {
	Message    string `json:"message"`
	BackupPath string `json:"backupPath"`
}

// BackupFileDTO respaldo disponible.
type BackupFileDTO struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
