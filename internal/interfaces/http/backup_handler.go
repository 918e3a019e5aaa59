package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-pos/internal/application/backup"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BackupHandler expone respaldos y la exportación a Excel.
type BackupHandler struct {
	uc *backup.UseCase
}

func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// ExportExcel godoc
// @Summary      Exportar datos a Excel
// @Tags         backup
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/export/excel [get]
func (h *BackupHandler) ExportExcel(c *fiber.Ctx) error {
	filename, data, err := h.uc.ExportExcel(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(filename)
	return c.Send(data)
}

// Create godoc
// @Summary      Crear respaldo
// @Tags         backup
// @Produce      json
// @Success      200  {object}  dto.BackupResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar respaldos
// @Tags         backup
// @Produce      json
// @Success      200  {array}   dto.BackupFileDTO
// @Router       /api/backups [get]
func (h *BackupHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
