package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// SKU es único en todo el catálogo; StockQuantity nunca baja de cero
// (la resta se hace únicamente dentro de la transacción de venta).
type Product struct {
	ID            string
	SKU           string // código único del producto
	Name          string
	Price         decimal.Decimal // precio de venta unitario
	StockQuantity int             // unidades disponibles
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
