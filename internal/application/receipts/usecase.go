// Package receipts genera el tiquete imprimible de una venta registrada.
package receipts

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/jhoicas/cafe-pos/internal/domain/entity"
	"github.com/jhoicas/cafe-pos/internal/domain/repository"
)

// Receipt datos que necesita el generador.
type Receipt struct {
	BusinessName string
	Footer       string
	Sale         *entity.Sale
}

// Generator produce el documento del tiquete (implementado por pdf.ReceiptGenerator).
type Generator interface {
	GenerateReceipt(ctx context.Context, r Receipt) ([]byte, error)
}

// UseCase genera tiquetes de venta.
type UseCase struct {
	sales        repository.SaleRepository
	generator    Generator
	businessName string
	footer       string
}

func NewUseCase(sales repository.SaleRepository, generator Generator, businessName, footer string) *UseCase {
	return &UseCase{sales: sales, generator: generator, businessName: businessName, footer: footer}
}

// Download devuelve el PDF y su nombre de archivo.
//   - domain.ErrNotFound si la venta no existe.
func (uc *UseCase) Download(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("tiquete: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.generator.GenerateReceipt(ctx, Receipt{
		BusinessName: uc.businessName,
		Footer:       uc.footer,
		Sale:         sale,
	})
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("tiquete_%s.pdf", sale.ID), nil
}
