// Comando de mantenimiento de respaldos del POS.
//
//	go run ./cmd/backup create
//	go run ./cmd/backup list
//	go run ./cmd/backup restore backup_2024-01-15_10-30-00.xlsx
//	go run ./cmd/backup cleanup
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/cafe-pos/internal/application/backup"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/records"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/cafe-pos/pkg/config"
	"github.com/jhoicas/cafe-pos/pkg/logger"
)

const usage = `uso: backup <comando>

comandos:
  create            crea un respaldo de todas las tablas
  list              lista los respaldos disponibles
  restore <archivo> restaura un respaldo (guarda antes el estado actual);
                    detenga la API antes: el candado no cruza procesos
  cleanup           conserva los BACKUP_KEEP respaldos más recientes`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// Solo los respaldos locales se pueden abrir sin red; el resto pasa por la API.
	if cfg.Store.Backend != config.BackendXLSX {
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("el comando de respaldo requiere STORE_BACKEND=xlsx")
	}
	store, err := recordstore.NewXLSXStore(cfg.Store.DataFile)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir archivo de datos")
	}
	guard := recordstore.NewGuard(store)
	defer guard.Close()

	uc := backup.NewUseCase(backup.Deps{
		Tables:    guard,
		Archive:   recordstore.NewArchive(cfg.Backup.Dir),
		Exporter:  spreadsheet.NewExcelExporter(),
		Products:  records.NewProductRepository(guard),
		Customers: records.NewCustomerRepository(guard),
		Sales:     records.NewSaleRepository(guard),
		Logger:    log.Component("backup"),
	})

	if err := run(context.Background(), uc, cfg.Backup.Keep, os.Args[1:]); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("comando fallido")
		os.Exit(1)
	}
}

func run(ctx context.Context, uc *backup.UseCase, keep int, args []string) error {
	switch args[0] {
	case "create":
		out, err := uc.Create(ctx)
		if err != nil {
			return err
		}
		fmt.Println(out.BackupPath)
	case "list":
		files, err := uc.List()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("no hay respaldos")
			return nil
		}
		for _, f := range files {
			fmt.Printf("%s\t%d bytes\t%s\n", f.Name, f.Size, f.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	case "restore":
		if len(args) < 2 {
			return fmt.Errorf("indique el archivo a restaurar")
		}
		safety, err := uc.Restore(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Println("restaurado; estado anterior guardado en", safety)
	case "cleanup":
		removed, err := uc.Cleanup(keep)
		if err != nil {
			return err
		}
		fmt.Printf("%d respaldos eliminados\n", removed)
	default:
		return fmt.Errorf("comando desconocido %q\n%s", args[0], usage)
	}
	return nil
}
