package sales

import (
	"context"

	"github.com/posbuzz/pos-api/internal/domain"
	"github.com/posbuzz/pos-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta existente.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, generator: generator}
}

// GenerateReceipt obtiene la venta con sus líneas y devuelve los bytes del PDF.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale, items)
}
