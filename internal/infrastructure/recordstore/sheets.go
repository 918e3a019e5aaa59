package recordstore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// sheetsAPI son las llamadas de Google Sheets que usa el respaldo remoto.
type sheetsAPI interface {
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, title string) error
	Get(ctx context.Context, rng string) ([][]interface{}, error)
	Update(ctx context.Context, rng string, values [][]interface{}) error
	BatchUpdate(ctx context.Context, data []*sheets.ValueRange) error
}

// SheetsConfig parámetros del respaldo Google Sheets.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsPath string
	Timeout         time.Duration
}

// SheetsStore persiste las tablas en una hoja de cálculo de Google.
// Cada operación es una sola llamada de escritura a la API, acotada por Timeout.
type SheetsStore struct {
	api     sheetsAPI
	timeout time.Duration
}

var _ Store = (*SheetsStore)(nil)

// NewSheetsStore se autentica con la cuenta de servicio y crea las hojas faltantes.
func NewSheetsStore(ctx context.Context, cfg SheetsConfig) (*SheetsStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SHEETS_ID es obligatorio para el respaldo sheets")
	}
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, storageErr("conectar", Products, err)
	}
	return newSheetsStore(ctx, &googleSheets{srv: srv, id: cfg.SpreadsheetID}, cfg.Timeout)
}

func newSheetsStore(ctx context.Context, api sheetsAPI, timeout time.Duration) (*SheetsStore, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &SheetsStore{api: api, timeout: timeout}
	if err := s.ensureSheets(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SheetsStore) ensureSheets(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	titles, err := s.api.SheetTitles(cctx)
	if err != nil {
		return storageErr("listar hojas", Products, err)
	}
	existing := make(map[string]bool, len(titles))
	for _, t := range titles {
		existing[t] = true
	}
	for _, t := range Tables() {
		if existing[t.Sheet] {
			continue
		}
		if err := s.api.AddSheet(cctx, t.Sheet); err != nil {
			return storageErr("crear hoja", t, err)
		}
		if err := s.api.Update(cctx, a1(t.Sheet, 1), toValues([][]string{t.Columns})); err != nil {
			return storageErr("escribir encabezado", t, err)
		}
	}
	return nil
}

func (s *SheetsStore) read(ctx context.Context, t Table) ([][]string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	values, err := s.api.Get(cctx, quote(t.Sheet))
	if err != nil {
		return nil, storageErr("leer", t, err)
	}
	return fromValues(values), nil
}

func (s *SheetsStore) GetAll(ctx context.Context, t Table) ([]Row, error) {
	raw, err := s.read(ctx, t)
	if err != nil {
		return nil, err
	}
	return parseSheet(raw), nil
}

// ReplaceAll escribe encabezado y filas desde A1 en una sola llamada; las filas sobrantes
// del contenido anterior se sobrescriben con celdas vacías.
func (s *SheetsStore) ReplaceAll(ctx context.Context, t Table, rows []Row) error {
	raw, err := s.read(ctx, t)
	if err != nil {
		return err
	}
	next := padTo(renderSheet(t, headerOf(raw), rows), raw)
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.api.Update(cctx, a1(t.Sheet, 1), toValues(next)); err != nil {
		return storageErr("escribir", t, err)
	}
	return nil
}

func (s *SheetsStore) Append(ctx context.Context, t Table, rows []Row) error {
	return s.AppendBatch(ctx, []Batch{{Table: t, Rows: rows}})
}

// AppendBatch agrega en todas las tablas con un único values.batchUpdate.
func (s *SheetsStore) AppendBatch(ctx context.Context, batches []Batch) error {
	data := make([]*sheets.ValueRange, 0, len(batches))
	for _, b := range batches {
		if len(b.Rows) == 0 {
			continue
		}
		raw, err := s.read(ctx, b.Table)
		if err != nil {
			return err
		}
		existing := headerOf(raw)
		if !covers(existing, Header(b.Table, existing, b.Rows)) {
			// Falta alguna columna: se reescribe la hoja completa con el encabezado ampliado.
			all := append(parseSheet(raw), b.Rows...)
			data = append(data, &sheets.ValueRange{
				Range:  a1(b.Table.Sheet, 1),
				Values: toValues(padTo(renderSheet(b.Table, headerOf(raw), all), raw)),
			})
			continue
		}
		cells := make([][]string, len(b.Rows))
		for i, r := range b.Rows {
			cells[i] = toCells(existing, r)
		}
		data = append(data, &sheets.ValueRange{
			Range:  a1(b.Table.Sheet, len(raw)+1),
			Values: toValues(cells),
		})
	}
	if len(data) == 0 {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.api.BatchUpdate(cctx, data); err != nil {
		return storageErr("agregar", batches[0].Table, err)
	}
	return nil
}

// covers indica si el encabezado existente contiene todas las columnas requeridas,
// sin importar su orden.
func covers(existing, needed []string) bool {
	if len(existing) == 0 {
		return false
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c] = true
	}
	for _, c := range needed {
		if !have[c] {
			return false
		}
	}
	return true
}

func (s *SheetsStore) Name() string { return "sheets" }

func (s *SheetsStore) Close() error { return nil }

func quote(sheet string) string {
	return "'" + sheet + "'"
}

func a1(sheet string, row int) string {
	return fmt.Sprintf("%s!A%d", quote(sheet), row)
}

// padTo agrega filas vacías para cubrir el contenido anterior de la hoja.
func padTo(next, previous [][]string) [][]string {
	width := 0
	for _, r := range next {
		if len(r) > width {
			width = len(r)
		}
	}
	for _, r := range previous {
		if len(r) > width {
			width = len(r)
		}
	}
	for len(next) < len(previous) {
		next = append(next, make([]string, width))
	}
	return next
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		vals := make([]interface{}, len(r))
		for j, c := range r {
			vals[j] = c
		}
		out[i] = vals
	}
	return out
}

func fromValues(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, r := range values {
		cells := make([]string, len(r))
		for j, c := range r {
			if c != nil {
				cells[j] = fmt.Sprint(c)
			}
		}
		out[i] = cells
	}
	return out
}

// googleSheets adapta *sheets.Service a sheetsAPI.
type googleSheets struct {
	srv *sheets.Service
	id  string
}

func (g *googleSheets) SheetTitles(ctx context.Context) ([]string, error) {
	ss, err := g.srv.Spreadsheets.Get(g.id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func (g *googleSheets) AddSheet(ctx context.Context, title string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: title}},
		}},
	}
	_, err := g.srv.Spreadsheets.BatchUpdate(g.id, req).Context(ctx).Do()
	return err
}

func (g *googleSheets) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := g.srv.Spreadsheets.Values.Get(g.id, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleSheets) Update(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := g.srv.Spreadsheets.Values.Update(g.id, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (g *googleSheets) BatchUpdate(ctx context.Context, data []*sheets.ValueRange) error {
	req := &sheets.BatchUpdateValuesRequest{ValueInputOption: "RAW", Data: data}
	_, err := g.srv.Spreadsheets.Values.BatchUpdate(g.id, req).Context(ctx).Do()
	return err
}
