// Package pdf implementa la generación del recibo de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del comercio  │  N° Recibo + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJERO: nombre + email                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Descripción | P.Unit | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appsales "github.com/posbuzz/pos-api/internal/application/sales"
	"github.com/posbuzz/pos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Formato de montos localizado (separador de miles es-CO).
var moneyPrinter = message.NewPrinter(language.MustParse("es-CO"))

func formatMoney(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return moneyPrinter.Sprintf("$ %.2f", v)
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	StoreName string
}

var _ appsales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	if storeName == "" {
		storeName = "PosBuzz"
	}
	return &MarotoReceiptGenerator{StoreName: storeName}
}

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	items []*entity.SaleItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		WithAuthor(g.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cashierRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, it := range items {
		m.AddRows(itemRow(it))
	}

	// Total
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del comercio (izq) y N° de recibo + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	fecha := sale.CreatedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Recibo "+sale.ID, props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New(fecha, props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// cashierRow: cajero que registró la venta.
func cashierRow(sale *entity.Sale) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Atendido por: %s <%s>", sale.UserName, sale.UserEmail), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	boldRight := bold
	boldRight.Align = align.Right
	return row.New(7).Add(
		col.New(1).Add(text.New("Cant", bold)),
		col.New(2).Add(text.New("SKU", bold)),
		col.New(5).Add(text.New("Descripción", bold)),
		col.New(2).Add(text.New("P. Unit", boldRight)),
		col.New(2).Add(text.New("Subtotal", boldRight)),
	)
}

func itemRow(it *entity.SaleItem) core.Row {
	sku, name := "", ""
	if it.Product != nil {
		sku, name = it.Product.SKU, it.Product.Name
	}
	normal := props.Text{Size: 9, Top: 1}
	right := normal
	right.Align = align.Right
	return row.New(6).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), normal)),
		col.New(2).Add(text.New(sku, normal)),
		col.New(5).Add(text.New(name, normal)),
		col.New(2).Add(text.New(formatMoney(it.UnitPrice), right)),
		col.New(2).Add(text.New(formatMoney(it.Subtotal()), right)),
	)
}

func totalRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(
			text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2}),
		),
		col.New(2).Add(
			text.New(formatMoney(sale.Total), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2,
			}),
		),
	)
}
