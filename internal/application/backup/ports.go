package backup

import (
	"context"

	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/infrastructure/recordstore"
)

// Tables da acceso exclusivo al almacén para tomar o restaurar una instantánea coherente
// (implementado por recordstore.Guard).
type Tables interface {
	Run(ctx context.Context, fn func(s recordstore.Store) error) error
	Name() string
}

// Archive guarda y lee instantáneas (implementado por recordstore.Archive).
type Archive interface {
	Save(name string, snap recordstore.Snapshot) (string, error)
	Load(name string) (recordstore.Snapshot, error)
	List() ([]recordstore.ArchiveFile, error)
	Remove(name string) error
}

// Exporter genera el libro de exportación legible (implementado por spreadsheet.ExcelExporter).
type Exporter interface {
	Export(products []*entity.Product, customers []*entity.Customer, sales []*entity.Sale) ([]byte, error)
}
