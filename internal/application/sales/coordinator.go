// Package sales coordina el registro de una venta: valida, persiste la venta con sus líneas
// y luego descuenta stock y actualiza las estadísticas del cliente.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Coordinator orquesta la venta. La venta queda registrada en cuanto se escriben
// cabecera y líneas; los efectos posteriores que fallen no la deshacen: se registran
// en el ReconciliationLog y se informan en Warnings.
type Coordinator struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	stock     StockAdjuster
	stats     CustomerStatsUpdater
	pending   *ReconciliationLog
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// Deps dependencias del coordinador.
type Deps struct {
	Products       repository.ProductRepository
	Customers      repository.CustomerRepository
	Sales          repository.SaleRepository
	Stock          StockAdjuster
	Stats          CustomerStatsUpdater
	Reconciliation *ReconciliationLog
	Logger         zerolog.Logger
	Now            func() time.Time
	NewID          func() string
}

// NewCoordinator construye el coordinador.
func NewCoordinator(d Deps) *Coordinator {
	c := &Coordinator{
		products:  d.Products,
		customers: d.Customers,
		sales:     d.Sales,
		stock:     d.Stock,
		stats:     d.Stats,
		pending:   d.Reconciliation,
		log:       d.Logger,
		now:       d.Now,
		newID:     d.NewID,
	}
	if c.pending == nil {
		c.pending = NewReconciliationLog(0)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = func() string { return uuid.New().String() }
	}
	return c
}

// line es una línea validada, lista para persistir.
type line struct {
	productID string
	name      string
	quantity  int
	price     decimal.Decimal
}

// RecordSale valida y registra una venta.
// Toda validación ocurre antes de escribir; un fallo al persistir la venta aborta sin tocar stock.
func (c *Coordinator) RecordSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	lines, err := c.validateItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	customerID, customerName, err := c.resolveCustomer(ctx, in.CustomerID, in.CustomerName)
	if err != nil {
		return nil, err
	}

	now := c.now()
	sale := &entity.Sale{
		ID:           c.newID(),
		CustomerID:   customerID,
		CustomerName: customerName,
		Date:         now,
		CreatedAt:    now,
	}
	sale.Items = make([]entity.SaleItem, 0, len(lines))
	for _, l := range lines {
		sale.Items = append(sale.Items, entity.NewSaleItem(sale.ID, l.productID, l.name, l.quantity, l.price))
	}
	sale.Total = sale.ComputeTotal()

	if err := c.sales.Create(ctx, sale); err != nil {
		c.log.Error().Err(err).Str("sale_id", sale.ID).Msg("no se pudo registrar la venta")
		return nil, err
	}
	c.log.Info().
		Str("sale_id", sale.ID).
		Str("total", sale.Total.String()).
		Int("items", len(sale.Items)).
		Msg("venta registrada")

	var warnings []string
	for _, it := range sale.Items {
		if e, ok := c.decrementStock(ctx, sale.ID, it.ProductID, it.Quantity); ok {
			warnings = append(warnings, e.Reason)
		}
	}
	if customerID != nil {
		if e, ok := c.updateStats(ctx, sale.ID, *customerID, sale.Total); ok {
			warnings = append(warnings, e.Reason)
		}
	}

	out := dto.NewSaleResponse(sale)
	out.Warnings = warnings
	return &out, nil
}

func (c *Coordinator) validateItems(ctx context.Context, items []dto.SaleItemRequest) ([]line, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la venta debe tener al menos un producto", domain.ErrInvalidInput)
	}
	catalog, err := c.products.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(catalog))
	for _, p := range catalog {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}

	lines := make([]line, 0, len(items))
	index := make(map[string]int, len(items))
	for i, it := range items {
		id := strings.TrimSpace(it.ProductID)
		if id == "" {
			return nil, fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidInput, i+1, it.Quantity)
		}
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: producto %s no existe", domain.ErrInvalidInput, id)
		}
		price := p.Price
		if it.Price != nil {
			price = *it.Price
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidInput, i+1)
		}
		name := strings.TrimSpace(it.ProductName)
		if name == "" {
			name = p.Name
		}

		// El id de línea es <venta>_<producto>: un producto repetido se fusiona en una sola línea.
		if j, dup := index[id]; dup {
			if !lines[j].price.Equal(price) {
				return nil, fmt.Errorf("%w: producto %s repetido con precios distintos", domain.ErrInvalidInput, id)
			}
			lines[j].quantity += it.Quantity
			continue
		}
		index[id] = len(lines)
		lines = append(lines, line{productID: id, name: name, quantity: it.Quantity, price: price})
	}
	return lines, nil
}

// resolveCustomer devuelve el id (nil para cliente de paso) y el nombre a guardar.
// Un id que no existe se guarda tal cual, con el nombre enviado o el genérico.
func (c *Coordinator) resolveCustomer(ctx context.Context, id *string, fallback string) (*string, string, error) {
	name := strings.TrimSpace(fallback)
	if name == "" {
		name = entity.WalkInCustomerName
	}
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, name, nil
	}
	cid := strings.TrimSpace(*id)
	cust, err := c.customers.GetByID(ctx, cid)
	if err != nil {
		return nil, "", err
	}
	if cust == nil {
		c.log.Warn().Str("customer_id", cid).Msg("cliente no encontrado; la venta se registra con el id recibido")
		return &cid, name, nil
	}
	return &cid, cust.Name, nil
}

// decrementStock descuenta stock de una línea. Devuelve la entrada registrada si algo no quedó completo.
func (c *Coordinator) decrementStock(ctx context.Context, saleID, productID string, qty int) (Entry, bool) {
	logger := c.log.With().Str("sale_id", saleID).Str("product_id", productID).Logger()
	res, err := c.stock.AdjustStock(ctx, productID, -qty, entity.StockModeRelative)
	switch {
	case err != nil:
		logger.Warn().Err(fmt.Errorf("%w: %w", domain.ErrPartialConsistency, err)).Int("quantity", qty).Msg("no se pudo descontar stock")
		return c.pending.Add(Entry{
			SaleID: saleID, Kind: EffectStockDecrement, TargetID: productID, Quantity: qty,
			Reason:    fmt.Sprintf("stock de %s sin descontar (%d): %v", productID, qty, err),
			Retryable: true,
		}), true
	case res == nil:
		logger.Warn().Int("quantity", qty).Msg("producto eliminado antes de descontar stock")
		return c.pending.Add(Entry{
			SaleID: saleID, Kind: EffectStockDecrement, TargetID: productID, Quantity: qty,
			Reason: fmt.Sprintf("producto %s no encontrado al descontar stock", productID),
		}), true
	case res.Clamped:
		logger.Warn().Int("quantity", qty).Int("previous_stock", res.PreviousStock).Msg("venta supera el stock disponible; stock en cero")
		return c.pending.Add(Entry{
			SaleID: saleID, Kind: EffectStockShortfall, TargetID: productID, Quantity: qty - res.PreviousStock,
			Reason: fmt.Sprintf("%s: se vendieron %d con stock %d", res.Product.Name, qty, res.PreviousStock),
		}), true
	}
	return Entry{}, false
}

func (c *Coordinator) updateStats(ctx context.Context, saleID, customerID string, total decimal.Decimal) (Entry, bool) {
	logger := c.log.With().Str("sale_id", saleID).Str("customer_id", customerID).Logger()
	res, err := c.stats.UpdateStats(ctx, customerID, total)
	switch {
	case err != nil:
		logger.Warn().Err(fmt.Errorf("%w: %w", domain.ErrPartialConsistency, err)).Msg("no se pudieron actualizar las estadísticas del cliente")
		return c.pending.Add(Entry{
			SaleID: saleID, Kind: EffectCustomerStats, TargetID: customerID, Amount: total,
			Reason:    fmt.Sprintf("estadísticas de %s sin actualizar: %v", customerID, err),
			Retryable: true,
		}), true
	case res == nil:
		return c.pending.Add(Entry{
			SaleID: saleID, Kind: EffectCustomerStats, TargetID: customerID, Amount: total,
			Reason: fmt.Sprintf("cliente %s no encontrado; estadísticas sin actualizar", customerID),
		}), true
	}
	return Entry{}, false
}

// ListSales devuelve todas las ventas con sus líneas, en orden de registro.
func (c *Coordinator) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := c.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleListResponse(list), nil
}

// GetSale devuelve una venta o (nil, nil) si no existe.
func (c *Coordinator) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := c.sales.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	out := dto.NewSaleResponse(s)
	return &out, nil
}

// Pending lista los efectos pendientes de reconciliación.
func (c *Coordinator) Pending() []dto.ReconciliationEntryDTO {
	return toEntryDTOs(c.pending.Pending())
}

// DismissPending descarta una entrada revisada por el operador.
func (c *Coordinator) DismissPending(id string) bool {
	return c.pending.Dismiss(id)
}

// PendingMetrics devuelve los contadores del registro de reconciliación.
func (c *Coordinator) PendingMetrics() dto.ReconciliationMetricsDTO {
	recorded, resolved, dropped := c.pending.Metrics()
	return dto.ReconciliationMetricsDTO{
		Pending:  len(c.pending.Pending()),
		Recorded: recorded,
		Resolved: resolved,
		Dropped:  dropped,
	}
}

// RetryPending reintenta una vez los efectos reintentables. Nunca se llama automáticamente.
func (c *Coordinator) RetryPending(ctx context.Context) dto.ReconciliationRetryResponse {
	entries := c.pending.take()
	var failed []Entry
	resolved := 0
	for _, e := range entries {
		e.Attempts++
		var err error
		var missing bool
		switch e.Kind {
		case EffectStockDecrement:
			var res *dto.StockAdjustmentResponse
			res, err = c.stock.AdjustStock(ctx, e.TargetID, -e.Quantity, entity.StockModeRelative)
			missing = err == nil && res == nil
			if res != nil && res.Clamped {
				failed = append(failed, Entry{
					ID: uuid.New().String(), SaleID: e.SaleID, Kind: EffectStockShortfall, TargetID: e.TargetID,
					Quantity: e.Quantity - res.PreviousStock, CreatedAt: c.now(),
					Reason: fmt.Sprintf("%s: se descontaron %d con stock %d", res.Product.Name, e.Quantity, res.PreviousStock),
				})
			}
		case EffectCustomerStats:
			var res *dto.CustomerResponse
			res, err = c.stats.UpdateStats(ctx, e.TargetID, e.Amount)
			missing = err == nil && res == nil
		}
		if err != nil {
			c.log.Warn().Err(err).Str("entry_id", e.ID).Str("kind", e.Kind).Msg("reintento fallido")
			e.Reason = err.Error()
			failed = append(failed, e)
			continue
		}
		if missing {
			e.Retryable = false
			e.Reason = fmt.Sprintf("%s no encontrado en el reintento", e.TargetID)
			failed = append(failed, e)
			continue
		}
		resolved++
		c.pending.resolved.Add(1)
		c.log.Info().Str("entry_id", e.ID).Str("sale_id", e.SaleID).Str("kind", e.Kind).Msg("efecto pendiente aplicado")
	}
	c.pending.restore(failed)
	return dto.ReconciliationRetryResponse{Resolved: resolved, Pending: toEntryDTOs(c.pending.Pending())}
}
