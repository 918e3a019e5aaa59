package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-pos/internal/application/dto"
)

// HealthHandler informa el estado del servicio y la fuente de datos activa.
type HealthHandler struct {
	dataSource string
	now        func() time.Time
}

func NewHealthHandler(dataSource string) *HealthHandler {
	return &HealthHandler{dataSource: dataSource, now: time.Now}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:     "OK",
		Timestamp:  h.now(),
		DataSource: h.dataSource,
	})
}
