package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/cafe-pos/docs"
	"github.com/jhoicas/cafe-pos/internal/application/backup"
	"github.com/jhoicas/cafe-pos/internal/application/catalog"
	"github.com/jhoicas/cafe-pos/internal/application/customers"
	"github.com/jhoicas/cafe-pos/internal/application/receipts"
	"github.com/jhoicas/cafe-pos/internal/application/reports"
	"github.com/jhoicas/cafe-pos/internal/application/sales"
	infrapdf "github.com/jhoicas/cafe-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/records"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/cafe-pos/internal/interfaces/http"
	"github.com/jhoicas/cafe-pos/pkg/config"
	"github.com/jhoicas/cafe-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// @title        Café POS API
// @version      1.0
// @description  Punto de venta e inventario del café: catálogo, clientes, ventas, tiquetes y respaldos.
// @host         localhost:3000
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	// Montos en JSON como números: 9500 y no "9500".
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de registros")
	}
	guard := recordstore.NewGuard(store)
	defer guard.Close()

	productRepo := records.NewProductRepository(guard)
	customerRepo := records.NewCustomerRepository(guard)
	saleRepo := records.NewSaleRepository(guard)

	productLedger := catalog.NewProductLedger(productRepo, catalog.WithDefaultMinStock(cfg.Catalog.DefaultMinStock))
	customerLedger := customers.NewCustomerLedger(customerRepo)
	coordinator := sales.NewCoordinator(sales.Deps{
		Products:  productRepo,
		Customers: customerRepo,
		Sales:     saleRepo,
		Stock:     productLedger,
		Stats:     customerLedger,
		Logger:    log.Component("sales"),
	})

	dashboardUC := reports.NewDashboardUseCase(productRepo, customerRepo, saleRepo)
	var reportOpts []reports.SalesReportOption
	if pg, ok := store.(*postgres.RecordStore); ok {
		reportOpts = append(reportOpts, reports.WithSalesTotals(pg))
	}
	salesReportUC := reports.NewSalesReportUseCase(saleRepo, reportOpts...)
	backupUC := backup.NewUseCase(backup.Deps{
		Tables:    guard,
		Archive:   recordstore.NewArchive(cfg.Backup.Dir),
		Exporter:  spreadsheet.NewExcelExporter(),
		Products:  productRepo,
		Customers: customerRepo,
		Sales:     saleRepo,
		Logger:    log.Component("backup"),
	})
	receiptUC := receipts.NewUseCase(saleRepo, infrapdf.NewReceiptGenerator(), cfg.Receipt.BusinessName, cfg.Receipt.Footer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Café POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Products:    productLedger,
		Customers:   customerLedger,
		Sales:       coordinator,
		Receipts:    receiptUC,
		Dashboard:   dashboardUC,
		SalesReport: salesReportUC,
		Backup:      backupUC,
		DataSource:  guard.Name(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre el respaldo configurado en STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (recordstore.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return recordstore.NewMemoryStore(), nil
	case config.BackendSheets:
		return recordstore.NewSheetsStore(ctx, recordstore.SheetsConfig{
			SpreadsheetID:   cfg.Store.SpreadsheetID,
			CredentialsPath: cfg.Store.CredentialsPath,
			Timeout:         cfg.Store.Timeout,
		})
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.NewRecordStore(pool), nil
	case config.BackendXLSX:
		return recordstore.NewXLSXStore(cfg.Store.DataFile)
	default:
		return nil, fmt.Errorf("respaldo desconocido: %s", cfg.Store.Backend)
	}
}
