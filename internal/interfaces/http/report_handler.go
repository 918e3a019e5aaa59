package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
	"github.com/jhoicas/cafe-pos/internal/application/reports"
)

// ReportHandler expone el tablero del día y el reporte de ventas.
type ReportHandler struct {
	dashboard *reports.DashboardUseCase
	sales     *reports.SalesReportUseCase
}

func NewReportHandler(dashboard *reports.DashboardUseCase, sales *reports.SalesReportUseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, sales: sales}
}

// Dashboard godoc
// @Summary      Tablero del día
// @Description  Ventas de hoy, productos con stock bajo, totales y las 5 ventas más recientes.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetDashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas
// @Tags         reports
// @Produce      json
// @Param        startDate   query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        endDate     query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        customerId  query  string  false  "Filtrar por cliente"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var f dto.SalesReportFilter
	if v := c.Query("startDate"); v != "" {
		t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
		if err != nil {
			return badRequest(c, "INVALID_DATE", "startDate debe tener formato YYYY-MM-DD")
		}
		f.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
		if err != nil {
			return badRequest(c, "INVALID_DATE", "endDate debe tener formato YYYY-MM-DD")
		}
		f.EndDate = &t
	}
	f.CustomerID = c.Query("customerId")

	out, err := h.sales.GetReport(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
