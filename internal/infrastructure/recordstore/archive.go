package recordstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain"
)

// Snapshot es una copia de todas las tablas, indexada por Table.Key.
type Snapshot map[string][]Row

// ArchiveFile describe un respaldo guardado en disco.
type ArchiveFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Archive guarda y lee respaldos .xlsx en un directorio, con una hoja por tabla.
type Archive struct {
	dir string
}

func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

func (a *Archive) Dir() string { return a.dir }

// Save escribe la instantánea como un libro nuevo y devuelve su ruta.
func (a *Archive) Save(name string, snap Snapshot) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: crear directorio de respaldos: %v", domain.ErrStorage, err)
	}
	wb := &workbook{sheets: map[string][][]string{}}
	for _, t := range Tables() {
		wb.set(t.Sheet, renderSheet(t, nil, snap[t.Key]))
	}
	path := filepath.Join(a.dir, filepath.Base(name))
	if err := writeWorkbook(path, wb); err != nil {
		return "", fmt.Errorf("%w: escribir respaldo %s: %v", domain.ErrStorage, name, err)
	}
	return path, nil
}

// Load lee un respaldo por nombre de archivo.
func (a *Archive) Load(name string) (Snapshot, error) {
	path, err := a.resolve(name)
	if err != nil {
		return nil, err
	}
	wb, err := readWorkbook(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: respaldo %s", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: leer respaldo %s: %v", domain.ErrStorage, name, err)
	}
	snap := Snapshot{}
	for _, t := range Tables() {
		snap[t.Key] = parseSheet(wb.sheets[t.Sheet])
	}
	return snap, nil
}

// List devuelve los respaldos del directorio, del más reciente al más antiguo.
func (a *Archive) List() ([]ArchiveFile, error) {
	entries, err := os.ReadDir(a.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []ArchiveFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: listar respaldos: %v", domain.ErrStorage, err)
	}
	files := make([]ArchiveFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xlsx") || strings.HasSuffix(e.Name(), ".tmp.xlsx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ArchiveFile{
			Name:    e.Name(),
			Path:    filepath.Join(a.dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name > files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Remove borra un respaldo.
func (a *Archive) Remove(name string) error {
	path, err := a.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: borrar respaldo %s: %v", domain.ErrStorage, name, err)
	}
	return nil
}

func (a *Archive) resolve(name string) (string, error) {
	base := filepath.Base(name)
	if base != name {
		return "", fmt.Errorf("%w: nombre de respaldo %q", domain.ErrInvalidInput, name)
	}
	if !strings.HasSuffix(base, ".xlsx") {
		return "", fmt.Errorf("%w: formato de respaldo %q", domain.ErrUnsupported, name)
	}
	return filepath.Join(a.dir, base), nil
}
