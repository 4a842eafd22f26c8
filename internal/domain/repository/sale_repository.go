package repository

import "github.com/posbuzz/pos-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus líneas (DIP).
// Las ventas son inmutables: no hay Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con el resumen del cajero (join a users), o nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	// GetItemsBySaleID devuelve las líneas con su producto asociado (join a products).
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	// List devuelve ventas de la más reciente a la más antigua, con resumen del cajero.
	List(limit, offset int) ([]*entity.Sale, error)
}
