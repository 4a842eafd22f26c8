package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea solicitada: producto y cantidad.
// El request puede repetir el mismo product_id; las cantidades se suman.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateSaleRequest entrada para crear una venta.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ProductSummary resumen de producto anidado en una línea de venta.
type ProductSummary struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// UserSummary resumen del cajero dueño de la venta.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SaleItemResponse una línea de la venta con su snapshot de precio.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// SaleResponse salida de una venta con líneas y resumen del cajero.
type SaleResponse struct {
	ID        string             `json:"id"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
	User      UserSummary        `json:"user"`
	Items     []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
