// Package pdf implementa el informe PDF de un cálculo EOQ.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + ID de cálculo  │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARÁMETROS: D / S / método y H                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESULTADO: EOQ / pedidos por año / costos / TOTAL           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cantidad | C. pedido | C. mantenimiento | Total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fórmula y política de rango                         │
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

	appinventory "github.com/jhoicas/inventario-eoq/internal/application/inventory"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
)

// maxTableRows filas de la curva incluidas en la tabla (la EOQ siempre entra).
const maxTableRows = 25

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray      = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorHighlight = &props.Color{Red: 255, Green: 236, Blue: 179}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReport(_ context.Context, data appinventory.ReportData) ([]byte, error) {
	if data.Format == nil {
		return nil, fmt.Errorf("pdf: formateador requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cálculo EOQ "+data.CalculationID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(inputRows(data.Input)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resultRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(data)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data appinventory.ReportData) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("CANTIDAD ECONÓMICA DE PEDIDO (EOQ)", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cálculo "+data.CalculationID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func inputRows(in appinventory.InputSummary) []core.Row {
	rows := []core.Row{
		sectionTitle("PARÁMETROS"),
		keyValueRow("Demanda anual (D)", in.AnnualDemand+" unidades"),
		keyValueRow("Costo por pedido (S)", in.OrderingCost),
	}
	if in.HoldingMethod == string(eoq.HoldingPercentage) {
		rows = append(rows,
			keyValueRow("Precio unitario", in.UnitPrice),
			keyValueRow("Porcentaje de mantenimiento", in.HoldingPct),
		)
	}
	return append(rows, keyValueRow("Costo de mantenimiento por unidad/año (H)", in.HoldingCost))
}

func resultRows(data appinventory.ReportData) []core.Row {
	d := data.Display
	return []core.Row{
		sectionTitle("RESULTADO"),
		keyValueRow("EOQ (cantidad óptima por pedido)", d.EOQ),
		keyValueRow("Pedidos por año", d.OrderFrequency),
		keyValueRow("Costo anual de pedidos", d.OrderingCostAtEOQ),
		keyValueRow("Costo anual de mantenimiento", d.HoldingCostAtEOQ),
		row.New(8).Add(
			col.New(7).Add(text.New("COSTO TOTAL ANUAL", props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			})),
			col.New(5).Add(text.New(d.TotalCost, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
			})),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string) core.Col {
		return col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorWhite, Top: 2, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cantidad"),
		h("Costo de pedidos"),
		h("Costo de mantenimiento"),
		h("Costo total"),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(data appinventory.ReportData) []core.Row {
	f := data.Format
	idx := tableIndexes(len(data.Samples), data.OptimumIndex, maxTableRows)
	rows := make([]core.Row, 0, len(idx))
	for _, i := range idx {
		s := data.Samples[i]
		style := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if s.IsOptimum {
			style.Style = fontstyle.Bold
		}
		r := row.New(6).Add(
			col.New(3).Add(text.New(f.Float(s.Quantity), style)),
			col.New(3).Add(text.New(f.FloatCurrency(s.OrderingCost), style)),
			col.New(3).Add(text.New(f.FloatCurrency(s.HoldingCost), style)),
			col.New(3).Add(text.New(f.FloatCurrency(s.TotalCost), style)),
		)
		if s.IsOptimum {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorHighlight})
		}
		rows = append(rows, r)
	}
	return rows
}

func footerRow(data appinventory.ReportData) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("EOQ = √(2·D·S / H). En la EOQ el costo anual de pedidos iguala al de mantenimiento.", props.Text{
			Size: 7, Color: colorGray, Top: 1,
		}),
		text.New(fmt.Sprintf("Curva: %d puntos, política de rango %s.", len(data.Samples), data.RangePolicy), props.Text{
			Size: 7, Color: colorGray, Top: 6,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
	})))
}

func keyValueRow(k, v string) core.Row {
	return row.New(5).Add(
		col.New(7).Add(text.New(k, props.Text{Size: 9, Top: 1})),
		col.New(5).Add(text.New(v, props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
	)
}

// tableIndexes elige como máximo max índices equiespaciados de n muestras,
// incluyendo siempre el primero, el último y opt.
func tableIndexes(n, opt, max int) []int {
	if n <= 0 {
		return nil
	}
	if n <= max {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	step := float64(n-1) / float64(max-2)
	out := make([]int, 0, max)
	added := false
	for k := 0; k < max-1; k++ {
		i := int(float64(k)*step + 0.5)
		if i > n-1 {
			i = n - 1
		}
		if !added && opt >= 0 && opt <= i {
			if opt < i {
				out = append(out, opt)
			}
			added = true
		}
		if len(out) > 0 && out[len(out)-1] == i {
			continue
		}
		out = append(out, i)
	}
	if !added && opt >= 0 && opt < n && out[len(out)-1] != opt {
		out = append(out, opt)
	}
	return out
}
