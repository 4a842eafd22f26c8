package sales

import (
	"context"

	"github.com/posbuzz/pos-api/internal/application/dto"
	"github.com/posbuzz/pos-api/internal/domain"
	"github.com/posbuzz/pos-api/internal/domain/entity"
	"github.com/posbuzz/pos-api/internal/domain/repository"
)

// SaleUseCase casos de uso de ventas: creación transaccional y consultas.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, userRepo repository.UserRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, userRepo: userRepo}
}

// GetSale obtiene una venta por ID con sus líneas y el resumen del cajero.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSales lista ventas de la más reciente a la más antigua, con líneas anidadas.
func (uc *SaleUseCase) ListSales(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		lines, err := uc.saleRepo.GetItemsBySaleID(sale.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toSaleResponse(sale, lines))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:        sale.ID,
		Total:     sale.Total,
		CreatedAt: sale.CreatedAt,
		User: dto.UserSummary{
			ID:    sale.UserID,
			Email: sale.UserEmail,
			Name:  sale.UserName,
		},
		Items: make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		line := dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		}
		if it.Product != nil {
			line.Product = &dto.ProductSummary{
				ID:   it.Product.ID,
				SKU:  it.Product.SKU,
				Name: it.Product.Name,
			}
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
