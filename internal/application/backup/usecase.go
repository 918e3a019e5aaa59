// Package backup crea, lista, restaura y depura respaldos del almacén, y genera la
// exportación a Excel.
package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
	"github.com/rs/zerolog"
)

const nameLayout = "2006-01-02_15-04-05"

// UseCase casos de uso de respaldo y exportación.
type UseCase struct {
	tables    Tables
	archive   Archive
	exporter  Exporter
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	log       zerolog.Logger
	now       func() time.Time
}

// Deps dependencias del caso de uso.
type Deps struct {
	Tables    Tables
	Archive   Archive
	Exporter  Exporter
	Products  repository.ProductRepository
	Customers repository.CustomerRepository
	Sales     repository.SaleRepository
	Logger    zerolog.Logger
}

func NewUseCase(d Deps) *UseCase {
	return &UseCase{
		tables:    d.Tables,
		archive:   d.Archive,
		exporter:  d.Exporter,
		products:  d.Products,
		customers: d.Customers,
		sales:     d.Sales,
		log:       d.Logger,
		now:       time.Now,
	}
}

// Create toma una instantánea de las cuatro tablas y la guarda como backup_<fecha>.xlsx.
func (uc *UseCase) Create(ctx context.Context) (*dto.BackupResponse, error) {
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("backup_%s.xlsx", uc.now().Format(nameLayout))
	path, err := uc.archive.Save(name, snap)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("path", path).Str("source", uc.tables.Name()).Msg("respaldo creado")
	return &dto.BackupResponse{Message: "Backup creado exitosamente", BackupPath: path}, nil
}

func (uc *UseCase) snapshot(ctx context.Context) (recordstore.Snapshot, error) {
	snap := recordstore.Snapshot{}
	err := uc.tables.Run(ctx, func(s recordstore.Store) error {
		for _, t := range recordstore.Tables() {
			rows, err := s.GetAll(ctx, t)
			if err != nil {
				return err
			}
			snap[t.Key] = rows
		}
		return nil
	})
	return snap, err
}

// List devuelve los respaldos disponibles, del más reciente al más antiguo.
func (uc *UseCase) List() ([]dto.BackupFileDTO, error) {
	files, err := uc.archive.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BackupFileDTO, 0, len(files))
	for _, f := range files {
		out = append(out, dto.BackupFileDTO{Name: f.Name, Size: f.Size, CreatedAt: f.ModTime})
	}
	return out, nil
}

// Restore reemplaza todas las tablas con el contenido del respaldo. Antes guarda el
// estado actual en un respaldo nuevo, cuyo nombre devuelve.
func (uc *UseCase) Restore(ctx context.Context, name string) (string, error) {
	snap, err := uc.archive.Load(name)
	if err != nil {
		return "", err
	}
	var safety string
	err = uc.tables.Run(ctx, func(s recordstore.Store) error {
		current := recordstore.Snapshot{}
		for _, t := range recordstore.Tables() {
			rows, err := s.GetAll(ctx, t)
			if err != nil {
				return err
			}
			current[t.Key] = rows
		}
		safety, err = uc.archive.Save(fmt.Sprintf("pre_restore_%s.xlsx", uc.now().Format(nameLayout)), current)
		if err != nil {
			return err
		}
		for i, t := range recordstore.Tables() {
			if err := s.ReplaceAll(ctx, t, snap[t.Key]); err != nil {
				if i == 0 {
					return err
				}
				// Las tablas anteriores ya quedaron restauradas.
				return fmt.Errorf("%w: restauración incompleta en %s; el estado anterior está en %s: %w",
					domain.ErrPartialConsistency, t.Sheet, filepath.Base(safety), err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("backup", name).Str("previous_state", safety).Msg("fallo al restaurar respaldo")
		return "", err
	}
	uc.log.Info().Str("backup", name).Str("previous_state", safety).Msg("respaldo restaurado")
	return safety, nil
}

// Cleanup conserva los keep respaldos más recientes y borra el resto.
func (uc *UseCase) Cleanup(keep int) (int, error) {
	files, err := uc.archive.List()
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	for i := keep; i < len(files); i++ {
		if err := uc.archive.Remove(files[i].Name); err != nil {
			return removed, err
		}
		removed++
	}
	if removed > 0 {
		uc.log.Info().Int("removed", removed).Int("kept", keep).Msg("respaldos antiguos eliminados")
	}
	return removed, nil
}

// ExportExcel genera el libro legible con productos, clientes y ventas.
func (uc *UseCase) ExportExcel(ctx context.Context) (filename string, data []byte, err error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return "", nil, err
	}
	customers, err := uc.customers.List(ctx)
	if err != nil {
		return "", nil, err
	}
	sales, err := uc.sales.List(ctx)
	if err != nil {
		return "", nil, err
	}
	data, err = uc.exporter.Export(products, customers, sales)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("cafe_data_%s.xlsx", uc.now().Format(time.DateOnly)), data, nil
}
