package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/application/receipts"
	"github.com/jhoicas/cafe-pos/internal/application/sales"
	"github.com/jhoicas/cafe-pos/internal/domain"
)

// SaleHandler maneja ventas, tiquetes y la reconciliación de efectos pendientes.
type SaleHandler struct {
	coordinator *sales.Coordinator
	receipts    *receipts.UseCase
}

func NewSaleHandler(coordinator *sales.Coordinator, receipts *receipts.UseCase) *SaleHandler {
	return &SaleHandler{coordinator: coordinator, receipts: receipts}
}

// List godoc
// @Summary      Listar ventas con sus líneas
// @Tags         sales
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.coordinator.ListSales(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.coordinator.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "venta no encontrada")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar venta
// @Description  Valida las líneas, persiste venta y detalle, descuenta stock y actualiza al cliente.
// @Description  Los efectos posteriores que no se apliquen se informan en warnings.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.coordinator.RecordSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Descargar tiquete PDF de una venta
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	data, filename, err := h.receipts.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "venta no encontrada")
		}
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}

// Pending godoc
// @Summary      Efectos de venta pendientes de reconciliación
// @Tags         reconciliation
// @Produce      json
// @Success      200  {array}  dto.ReconciliationEntryDTO
// @Router       /api/reconciliation [get]
func (h *SaleHandler) Pending(c *fiber.Ctx) error {
	return c.JSON(h.coordinator.Pending())
}

// Metrics godoc
// @Summary      Contadores del registro de reconciliación
// @Tags         reconciliation
// @Produce      json
// @Success      200  {object}  dto.ReconciliationMetricsDTO
// @Router       /api/reconciliation/metrics [get]
func (h *SaleHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.coordinator.PendingMetrics())
}

// Retry godoc
// @Summary      Reintentar efectos pendientes
// @Tags         reconciliation
// @Produce      json
// @Success      200  {object}  dto.ReconciliationRetryResponse
// @Router       /api/reconciliation/retry [post]
func (h *SaleHandler) Retry(c *fiber.Ctx) error {
	return c.JSON(h.coordinator.RetryPending(c.UserContext()))
}

// Dismiss godoc
// @Summary      Descartar una entrada revisada
// @Tags         reconciliation
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reconciliation/{id} [delete]
func (h *SaleHandler) Dismiss(c *fiber.Ctx) error {
	if !h.coordinator.DismissPending(c.Params("id")) {
		return notFound(c, "entrada no encontrada")
	}
	return c.JSON(dto.MessageResponse{Message: "Entrada descartada"})
}
