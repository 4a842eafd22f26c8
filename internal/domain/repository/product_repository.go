package repository

import "github.com/posbuzz/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetByIDsForUpdate obtiene los productos indicados bloqueando sus filas
	// (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción.
	GetByIDsForUpdate(ids []string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock resta qty unidades del stock del producto.
	DecrementStock(productID string, qty int) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
