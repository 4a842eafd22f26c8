package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta completada: registro inmutable, nunca se actualiza ni elimina.
// UserEmail y UserName son un resumen del cajero, poblados por join para los listados.
type Sale struct {
	ID        string
	UserID    string
	Total     decimal.Decimal
	CreatedAt time.Time

	UserEmail string
	UserName  string
}

// SaleItem es una línea de una venta: producto, cantidad y el precio unitario
// al momento de la venta. UnitPrice es un snapshot: cambios posteriores de precio
// no alteran el total histórico. LineNo (desde 1) conserva el orden del request.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	LineNo    int
	Quantity  int
	UnitPrice decimal.Decimal

	// Product referencia de solo lectura para mostrar la línea (join, puede ser nil).
	Product *Product
}

// Subtotal devuelve UnitPrice × Quantity.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
