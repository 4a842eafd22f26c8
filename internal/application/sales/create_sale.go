package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/posbuzz/pos-api/internal/application/dto"
	"github.com/posbuzz/pos-api/internal/domain"
	"github.com/posbuzz/pos-api/internal/domain/entity"
	"github.com/posbuzz/pos-api/internal/domain/repository"
)

// CreateSale crea una venta de forma atómica: valida stock, calcula el total con el
// precio leído dentro de la transacción (snapshot), persiste Sale + SaleItems y
// descuenta el stock. Todo o nada: cualquier error hace rollback completo.
//
// Las filas de products se bloquean con SELECT FOR UPDATE, así dos ventas
// concurrentes sobre el mismo producto no pueden pasar ambas la verificación
// de stock. No hay reintento interno: un rechazo de negocio no debe reintentarse.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Agregar cantidades por producto: el request puede repetir product_id y
	// las repeticiones se suman (una sola verificación contra el stock, un solo descuento).
	qtyByProduct := make(map[string]int, len(in.Items))
	order := make([]string, 0, len(in.Items)) // orden de primera aparición, para las líneas
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := qtyByProduct[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		qtyByProduct[item.ProductID] += item.Quantity
	}

	// El cajero debe existir; su resumen se estampa en la respuesta.
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UserEmail: user.Email,
		UserName:  user.Name,
	}
	items := make([]*entity.SaleItem, 0, len(order))

	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		// IDs ordenados antes de bloquear: dos ventas que toquen los mismos
		// productos adquieren los locks en el mismo orden y no se interbloquean.
		ids := make([]string, 0, len(qtyByProduct))
		for id := range qtyByProduct {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		products, err := productRepo.GetByIDsForUpdate(ids)
		if err != nil {
			return err
		}
		if len(products) != len(ids) {
			return domain.ErrNotFound // al menos un producto no existe; rollback sin venta parcial
		}
		byID := make(map[string]*entity.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		// Verificación de stock contra la cantidad agregada, todo o nada.
		for _, id := range order {
			p := byID[id]
			requested := qtyByProduct[id]
			if p.StockQuantity < requested {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.StockQuantity,
					Requested:   requested,
				}
			}
		}

		// Total con el precio leído dentro de la tx (snapshot por línea).
		total := decimal.Zero
		for _, id := range order {
			p := byID[id]
			qty := decimal.NewFromInt(int64(qtyByProduct[id]))
			total = total.Add(p.Price.Mul(qty))
		}
		sale.Total = total

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i, id := range order {
			p := byID[id]
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: p.ID,
				LineNo:    i + 1, // orden de primera aparición en el request
				Quantity:  qtyByProduct[id],
				UnitPrice: p.Price, // snapshot: cambios de precio posteriores no tocan la venta
				Product:   p,
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
		}

		for _, id := range order {
			if err := productRepo.DecrementStock(id, qtyByProduct[id]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items), nil
}
