// Package pdf implementa la generación de la guía de empaque (packing slip)
// que viaja dentro de cada envío.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: VialFlow Pro  │  N° Envío + Fecha                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINO: Nombre + dirección completa                       │
//	│  LOTE: número, formato, modalidad de venta                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Caja | Contenido | Peso (lb) | Dimensiones          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: carrier + tracking + total de cajas                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 82, Blue: 64}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ shipping.PackingSlipGenerator = (*MarotoSlipGenerator)(nil)

// MarotoSlipGenerator implementa shipping.PackingSlipGenerator usando Maroto v2.
type MarotoSlipGenerator struct {
	companyName string
}

// NewMarotoSlipGenerator construye el generador con el nombre de la empresa
// que encabeza la guía.
func NewMarotoSlipGenerator(companyName string) *MarotoSlipGenerator {
	if companyName == "" {
		companyName = "VialFlow Pro"
	}
	return &MarotoSlipGenerator{companyName: companyName}
}

// Generate genera el PDF de la guía de empaque y devuelve sus bytes.
func (g *MarotoSlipGenerator) Generate(shipment *entity.Shipment, batch *entity.ProductionBatch, boxes []*entity.ShipmentBox) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de empaque", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(shipment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(destRow(shipment))
	m.AddRows(batchRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range boxRows(batch, boxes) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(shipment, len(boxes)) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía de empaque: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq) y N° de envío + fecha (der).
func (g *MarotoSlipGenerator) headerRow(shipment *entity.Shipment) core.Row {
	fecha := shipment.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Guía de empaque", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ENVÍO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(shipment.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// destRow: destinatario y dirección completa.
func destRow(shipment *entity.Shipment) core.Row {
	addr := fmt.Sprintf("%s, %s, %s %s, %s",
		shipment.DestAddress, shipment.DestCity, shipment.DestState,
		shipment.DestZip, shipment.DestCountry,
	)
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(shipment.DestName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(addr, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// batchRow: datos del lote que viaja en el envío.
func batchRow(batch *entity.ProductionBatch) core.Row {
	modalidad := "individual"
	if batch.SaleType == entity.SaleTypePack {
		modalidad = fmt.Sprintf("pack (%d packs)", batch.PackQuantity)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("LOTE DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Lote: %s   |   Unidades: %d   |   Modalidad: %s",
				batch.BatchNumber, batch.Quantity, modalidad,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de cajas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Caja", 2, align.Center),
		h("Contenido", 5, align.Left),
		h("Peso (lb)", 2, align.Right),
		h("Dimensiones (in)", 3, align.Right),
	)
}

// boxRows: una fila por caja del envío.
func boxRows(batch *entity.ProductionBatch, boxes []*entity.ShipmentBox) []core.Row {
	result := make([]core.Row, 0, len(boxes))
	for _, b := range boxes {
		contenido := fmt.Sprintf("%d botellas", b.BottlesPerBox)
		if batch.SaleType == entity.SaleTypePack {
			contenido = fmt.Sprintf("%d packs", b.PacksPerBox)
		}
		dims := fmt.Sprintf("%s × %s × %s",
			b.LengthIn.StringFixed(1), b.WidthIn.StringFixed(1), b.HeightIn.StringFixed(1),
		)
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("#%d", b.BoxNumber),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				contenido,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				b.WeightLb.StringFixed(1),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				dims,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: carrier + tracking (con código QR si existe) + total de cajas.
func footerRows(shipment *entity.Shipment, boxCount int) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Total de cajas: %d", boxCount), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
		)),
	}

	if shipment.TrackingNumber != "" {
		rows = append(rows, row.New(40).Add(
			col.New(4).Add(code.NewQr(shipment.TrackingNumber, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Tracking: "+shipment.TrackingNumber, props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3,
				}),
				text.New("Carrier: "+nonEmpty(shipment.Carrier, "—"), props.Text{
					Size: 9, Top: 12, Left: 3, Color: colorGray,
				}),
			),
		))
	} else if shipment.Carrier != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Carrier: "+shipment.Carrier, props.Text{Size: 9, Top: 2, Color: colorGray}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Verifique el contenido contra esta guía al recibir el envío. "+
				"Reporte cualquier diferencia dentro de las 48 horas.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta un UUID a su primer bloque para mostrarlo como número de envío.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
