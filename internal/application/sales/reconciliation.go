package sales

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/shopspring/decimal"
)

// Tipos de efecto pendiente.
const (
	EffectStockDecrement = "stock_decrement" // no se pudo descontar el stock
	EffectStockShortfall = "stock_shortfall" // se vendió más de lo disponible; el stock quedó en cero
	EffectCustomerStats  = "customer_stats"  // no se pudieron actualizar las estadísticas del cliente
)

// Entry es un efecto secundario de una venta que no quedó aplicado.
// Solo las entradas Retryable se reintentan, y solo a pedido del operador.
type Entry struct {
	ID        string
	SaleID    string
	Kind      string
	TargetID  string
	Quantity  int
	Amount    decimal.Decimal
	Reason    string
	Retryable bool
	Attempts  int
	CreatedAt time.Time
}

// ReconciliationLog guarda en memoria los efectos pendientes, con capacidad acotada:
// al llenarse descarta la entrada más antigua.
type ReconciliationLog struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int

	recorded atomic.Uint64
	resolved atomic.Uint64
	dropped  atomic.Uint64
}

// NewReconciliationLog crea el registro con la capacidad dada (por defecto 500).
func NewReconciliationLog(capacity int) *ReconciliationLog {
	if capacity <= 0 {
		capacity = 500
	}
	return &ReconciliationLog{capacity: capacity}
}

// Add registra una entrada y la devuelve con id y fecha asignados.
func (r *ReconciliationLog) Add(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.recorded.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) >= r.capacity {
		r.entries = r.entries[1:]
		r.dropped.Add(1)
	}
	r.entries = append(r.entries, e)
	return e
}

// Pending devuelve una copia de las entradas en orden de llegada.
func (r *ReconciliationLog) Pending() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// take extrae las entradas reintentables para procesarlas fuera del candado.
func (r *ReconciliationLog) take() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var retry, keep []Entry
	for _, e := range r.entries {
		if e.Retryable {
			retry = append(retry, e)
		} else {
			keep = append(keep, e)
		}
	}
	r.entries = keep
	return retry
}

// restore devuelve al registro las entradas que siguen fallando.
func (r *ReconciliationLog) restore(entries []Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	for len(r.entries) > r.capacity {
		r.entries = r.entries[1:]
		r.dropped.Add(1)
	}
}

// Dismiss quita una entrada por id (por ejemplo, un aviso ya revisado). Devuelve false si no existe.
func (r *ReconciliationLog) Dismiss(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.resolved.Add(1)
			return true
		}
	}
	return false
}

// Metrics devuelve contadores acumulados.
func (r *ReconciliationLog) Metrics() (recorded, resolved, dropped uint64) {
	return r.recorded.Load(), r.resolved.Load(), r.dropped.Load()
}

func toEntryDTO(e Entry) dto.ReconciliationEntryDTO {
	return dto.ReconciliationEntryDTO{
		ID:        e.ID,
		SaleID:    e.SaleID,
		Kind:      e.Kind,
		TargetID:  e.TargetID,
		Quantity:  e.Quantity,
		Amount:    e.Amount,
		Reason:    e.Reason,
		Retryable: e.Retryable,
		Attempts:  e.Attempts,
		CreatedAt: e.CreatedAt,
	}
}

func toEntryDTOs(entries []Entry) []dto.ReconciliationEntryDTO {
	out := make([]dto.ReconciliationEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	return out
}
