package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-pos/internal/application/backup"
	"github.com/jhoicas/cafe-pos/internal/application/catalog"
	"github.com/jhoicas/cafe-pos/internal/application/customers"
	"github.com/jhoicas/cafe-pos/internal/application/receipts"
	"github.com/jhoicas/cafe-pos/internal/application/reports"
	"github.com/jhoicas/cafe-pos/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Products    *catalog.ProductLedger
	Customers   *customers.CustomerLedger
	Sales       *sales.Coordinator
	Receipts    *receipts.UseCase
	Dashboard   *reports.DashboardUseCase
	SalesReport *reports.SalesReportUseCase
	Backup      *backup.UseCase
	DataSource  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	healthHandler := NewHealthHandler(deps.DataSource)
	api.Get("/health", healthHandler.Health)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Products)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", productHandler.Delete)

	// Customers
	customersGroup := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.Customers)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Put("/:id", customerHandler.Update)
	customersGroup.Delete("/:id", customerHandler.Delete)

	// Sales
	saleHandler := NewSaleHandler(deps.Sales, deps.Receipts)
	salesGroup := api.Group("/sales")
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Efectos de venta pendientes
	recon := api.Group("/reconciliation")
	recon.Get("/", saleHandler.Pending)
	recon.Get("/metrics", saleHandler.Metrics)
	recon.Post("/retry", saleHandler.Retry)
	recon.Delete("/:id", saleHandler.Dismiss)

	// Reports
	reportHandler := NewReportHandler(deps.Dashboard, deps.SalesReport)
	api.Get("/reports/dashboard", reportHandler.Dashboard)
	api.Get("/reports/sales", reportHandler.Sales)

	// Backup / export
	backupHandler := NewBackupHandler(deps.Backup)
	api.Get("/export/excel", backupHandler.ExportExcel)
	api.Post("/backup", backupHandler.Create)
	api.Get("/backups", backupHandler.List)
}
