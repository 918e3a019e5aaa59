package recordstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXStore persiste las tablas como hojas de un libro Excel local.
// Cada escritura reescribe el libro completo en un archivo temporal y lo renombra,
// de modo que un fallo a mitad de escritura no deja el archivo corrupto.
type XLSXStore struct {
	path string
}

var _ Store = (*XLSXStore)(nil)

// NewXLSXStore abre (o crea) el libro en path y garantiza que existan las cuatro hojas.
func NewXLSXStore(path string) (*XLSXStore, error) {
	s := &XLSXStore{path: path}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storageErr("crear directorio", Products, err)
	}
	wb, err := readWorkbook(path)
	if errors.Is(err, os.ErrNotExist) {
		wb = &workbook{sheets: map[string][][]string{}}
	} else if err != nil {
		return nil, storageErr("abrir libro", Products, err)
	}
	missing := false
	for _, t := range Tables() {
		if _, ok := wb.sheets[t.Sheet]; !ok {
			wb.set(t.Sheet, [][]string{t.Columns})
			missing = true
		}
	}
	if missing {
		if err := writeWorkbook(path, wb); err != nil {
			return nil, storageErr("inicializar libro", Products, err)
		}
	}
	return s, nil
}

func (s *XLSXStore) GetAll(ctx context.Context, t Table) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wb, err := readWorkbook(s.path)
	if err != nil {
		return nil, storageErr("leer", t, err)
	}
	return parseSheet(wb.sheets[t.Sheet]), nil
}

func (s *XLSXStore) ReplaceAll(ctx context.Context, t Table, rows []Row) error {
	return s.modify(ctx, t, func(wb *workbook) {
		wb.set(t.Sheet, renderSheet(t, headerOf(wb.sheets[t.Sheet]), rows))
	})
}

func (s *XLSXStore) Append(ctx context.Context, t Table, rows []Row) error {
	return s.AppendBatch(ctx, []Batch{{Table: t, Rows: rows}})
}

func (s *XLSXStore) AppendBatch(ctx context.Context, batches []Batch) error {
	if len(batches) == 0 {
		return nil
	}
	return s.modify(ctx, batches[0].Table, func(wb *workbook) {
		for _, b := range batches {
			current := parseSheet(wb.sheets[b.Table.Sheet])
			all := append(current, b.Rows...)
			wb.set(b.Table.Sheet, renderSheet(b.Table, headerOf(wb.sheets[b.Table.Sheet]), all))
		}
	})
}

func (s *XLSXStore) modify(ctx context.Context, t Table, fn func(wb *workbook)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wb, err := readWorkbook(s.path)
	if err != nil {
		return storageErr("leer", t, err)
	}
	fn(wb)
	if err := writeWorkbook(s.path, wb); err != nil {
		return storageErr("escribir", t, err)
	}
	return nil
}

func (s *XLSXStore) Name() string { return "xlsx" }

func (s *XLSXStore) Close() error { return nil }

// workbook es la copia en memoria de un libro: hojas en su orden original.
type workbook struct {
	order  []string
	sheets map[string][][]string
}

func (wb *workbook) set(name string, rows [][]string) {
	if _, ok := wb.sheets[name]; !ok {
		wb.order = append(wb.order, name)
	}
	wb.sheets[name] = rows
}

func headerOf(raw [][]string) []string {
	if len(raw) == 0 {
		return nil
	}
	return raw[0]
}

func readWorkbook(path string) (*workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	wb := &workbook{sheets: map[string][][]string{}}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("hoja %s: %w", name, err)
		}
		wb.set(name, rows)
	}
	return wb, nil
}

func writeWorkbook(path string, wb *workbook) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(0)
	for i, name := range wb.order {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		for r, cells := range wb.sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			values := make([]interface{}, len(cells))
			for i, c := range cells {
				values[i] = c
			}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return err
			}
		}
	}

	// excelize exige una extensión de libro válida también para el temporal.
	tmp := path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
