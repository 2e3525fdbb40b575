// Package chart dibuja la curva costo vs. cantidad como gráfico vectorial en PDF.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/phpdave11/gofpdf"

	appinventory "github.com/jhoicas/inventario-eoq/internal/application/inventory"
)

// Área de trazado en mm sobre A4 horizontal (297 × 210).
const (
	plotLeft   = 30.0
	plotTop    = 25.0
	plotWidth  = 240.0
	plotHeight = 145.0
	tickCount  = 5
)

type rgb struct{ r, g, b int }

var (
	colorOrdering = rgb{31, 119, 180}
	colorHolding  = rgb{255, 127, 14}
	colorTotal    = rgb{44, 160, 44}
	colorMarker   = rgb{214, 39, 40}
	colorAxis     = rgb{60, 60, 60}
	colorGrid     = rgb{220, 220, 220}
)

// GofpdfChartRenderer implementa inventory.ChartRenderer.
type GofpdfChartRenderer struct{}

// NewGofpdfChartRenderer construye el renderizador.
func NewGofpdfChartRenderer() *GofpdfChartRenderer { return &GofpdfChartRenderer{} }

// RenderChart dibuja las curvas de costo de pedidos, de mantenimiento y total,
// con una línea vertical discontinua en la EOQ.
func (r *GofpdfChartRenderer) RenderChart(_ context.Context, data appinventory.ReportData) ([]byte, error) {
	if len(data.Samples) < 2 {
		return nil, fmt.Errorf("chart: se requieren al menos 2 muestras, hay %d", len(data.Samples))
	}
	if data.Format == nil {
		return nil, fmt.Errorf("chart: formateador requerido")
	}

	xMin, xMax := data.Samples[0].Quantity, data.Samples[len(data.Samples)-1].Quantity
	yMax := 0.0
	for _, s := range data.Samples {
		yMax = math.Max(yMax, math.Max(s.TotalCost, math.Max(s.OrderingCost, s.HoldingCost)))
	}
	// Con rangos amplios (p. ej. [1, D]) el costo de pedidos cerca de Q=1 aplastaría
	// la zona del mínimo: se recorta el eje Y a 4 veces el costo total óptimo.
	if i := data.OptimumIndex; i >= 0 && i < len(data.Samples) {
		yMax = math.Min(yMax, 4*data.Samples[i].TotalCost)
	}
	yMax = niceCeil(yMax)
	sx := func(q float64) float64 { return plotLeft + (q-xMin)/(xMax-xMin)*plotWidth }
	sy := func(c float64) float64 { return plotTop + plotHeight - c/yMax*plotHeight }

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Curva de costos EOQ "+data.CalculationID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(plotLeft, 10)
	pdf.Cell(plotWidth, 8, tr("Costo anual vs. cantidad por pedido"))

	drawGridAndAxes(pdf, data, xMin, xMax, yMax, sx, sy, tr)

	series := []struct {
		name  string
		color rgb
		value func(i int) float64
	}{
		{"Costo de pedidos", colorOrdering, func(i int) float64 { return data.Samples[i].OrderingCost }},
		{"Costo de mantenimiento", colorHolding, func(i int) float64 { return data.Samples[i].HoldingCost }},
		{"Costo total", colorTotal, func(i int) float64 { return data.Samples[i].TotalCost }},
	}
	pdf.SetLineWidth(0.5)
	for _, s := range series {
		setDraw(pdf, s.color)
		for i := 1; i < len(data.Samples); i++ {
			y0, y1 := math.Min(s.value(i-1), yMax), math.Min(s.value(i), yMax)
			pdf.Line(sx(data.Samples[i-1].Quantity), sy(y0), sx(data.Samples[i].Quantity), sy(y1))
		}
	}

	if i := data.OptimumIndex; i >= 0 && i < len(data.Samples) {
		opt := data.Samples[i]
		x := sx(opt.Quantity)
		setDraw(pdf, colorMarker)
		pdf.SetLineWidth(0.4)
		pdf.SetDashPattern([]float64{2, 1.5}, 0)
		pdf.Line(x, plotTop, x, plotTop+plotHeight)
		pdf.SetDashPattern([]float64{}, 0)
		pdf.SetFillColor(colorMarker.r, colorMarker.g, colorMarker.b)
		pdf.Circle(x, sy(opt.TotalCost), 1.2, "F")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(colorMarker.r, colorMarker.g, colorMarker.b)
		pdf.Text(x+1.5, plotTop+4, tr("EOQ = "+data.Format.Float(opt.Quantity)))
		pdf.Text(x+1.5, plotTop+9, tr("Total = "+data.Format.FloatCurrency(opt.TotalCost)))
		pdf.SetTextColor(0, 0, 0)
	}

	drawLegend(pdf, tr, []legendItem{
		{"Costo de pedidos", colorOrdering},
		{"Costo de mantenimiento", colorHolding},
		{"Costo total", colorTotal},
		{"EOQ", colorMarker},
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("chart: generar PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawGridAndAxes(
	pdf *gofpdf.Fpdf,
	data appinventory.ReportData,
	xMin, xMax, yMax float64,
	sx, sy func(float64) float64,
	tr func(string) string,
) {
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetLineWidth(0.1)
	for k := 0; k <= tickCount; k++ {
		frac := float64(k) / tickCount
		q := xMin + frac*(xMax-xMin)
		c := frac * yMax

		setDraw(pdf, colorGrid)
		pdf.Line(sx(q), plotTop, sx(q), plotTop+plotHeight)
		pdf.Line(plotLeft, sy(c), plotLeft+plotWidth, sy(c))

		xl := tr(data.Format.Float(q))
		pdf.Text(sx(q)-pdf.GetStringWidth(xl)/2, plotTop+plotHeight+5, xl)
		yl := tr(data.Format.Float(c))
		pdf.Text(plotLeft-2-pdf.GetStringWidth(yl), sy(c)+1, yl)
	}

	setDraw(pdf, colorAxis)
	pdf.SetLineWidth(0.3)
	pdf.Line(plotLeft, plotTop+plotHeight, plotLeft+plotWidth, plotTop+plotHeight)
	pdf.Line(plotLeft, plotTop, plotLeft, plotTop+plotHeight)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(plotLeft+plotWidth/2-20, plotTop+plotHeight+12, tr("Cantidad por pedido (unidades)"))
	pdf.TransformBegin()
	pdf.TransformRotate(90, 12, plotTop+plotHeight/2+15)
	pdf.Text(12, plotTop+plotHeight/2+15, tr("Costo anual"))
	pdf.TransformEnd()
}

type legendItem struct {
	label string
	color rgb
}

func drawLegend(pdf *gofpdf.Fpdf, tr func(string) string, items []legendItem) {
	pdf.SetFont("Helvetica", "", 8)
	x, y := plotLeft, plotTop+plotHeight+18
	for _, it := range items {
		setDraw(pdf, it.color)
		pdf.SetLineWidth(0.8)
		pdf.Line(x, y, x+8, y)
		pdf.Text(x+10, y+1, tr(it.label))
		x += 14 + pdf.GetStringWidth(tr(it.label))
	}
}

func setDraw(pdf *gofpdf.Fpdf, c rgb) {
	pdf.SetDrawColor(c.r, c.g, c.b)
}

// niceCeil redondea hacia arriba a 1, 2 o 5 × 10^k para que los ticks sean legibles.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}
