package sales

import (
	"context"

	"github.com/posbuzz/pos-api/internal/domain/entity"
	"github.com/posbuzz/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para la creación de ventas: si fn devuelve
// error se hace rollback y no queda ningún efecto parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptPDFGenerator genera la representación en PDF del recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error)
}
