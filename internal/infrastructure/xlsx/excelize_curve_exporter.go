// Package xlsx exporta curvas EOQ a planillas y lee lotes de parámetros desde ellas.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appinventory "github.com/jhoicas/inventario-eoq/internal/application/inventory"
)

const (
	sheetResult = "Resultado"
	sheetCurve  = "Curva"
)

// ExcelizeCurveExporter implementa inventory.CurveExporter.
type ExcelizeCurveExporter struct{}

// NewExcelizeCurveExporter construye el exportador.
func NewExcelizeCurveExporter() *ExcelizeCurveExporter { return &ExcelizeCurveExporter{} }

// ExportCurve escribe dos hojas: Resultado (parámetros y resultado) y Curva
// (una fila por muestra, valores sin redondear).
func (e *ExcelizeCurveExporter) ExportCurve(_ context.Context, data appinventory.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetResult); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetCurve); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	r := data.Result
	summary := [][]any{
		{"Cálculo", data.CalculationID},
		{"Demanda anual (D)", data.Input.AnnualDemand},
		{"Costo por pedido (S)", data.Input.OrderingCost},
		{"Método de mantenimiento", data.Input.HoldingMethod},
		{"Costo de mantenimiento por unidad/año (H)", data.Input.HoldingCost},
		{},
		{"EOQ", r.EOQ.InexactFloat64()},
		{"Pedidos por año", r.OrderFrequency.InexactFloat64()},
		{"Costo anual de pedidos", r.OrderingCostAtEOQ.InexactFloat64()},
		{"Costo anual de mantenimiento", r.HoldingCostAtEOQ.InexactFloat64()},
		{"Costo total anual", r.TotalCost.InexactFloat64()},
	}
	for i, vals := range summary {
		if len(vals) == 0 {
			continue
		}
		if err := setRow(f, sheetResult, i+1, vals); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, sheetCurve, 1, []any{"Cantidad", "Costo de pedidos", "Costo de mantenimiento", "Costo total", "EOQ"}); err != nil {
		return nil, err
	}
	for i, s := range data.Samples {
		marker := ""
		if s.IsOptimum {
			marker = "*"
		}
		if err := setRow(f, sheetCurve, i+2, []any{s.Quantity, s.OrderingCost, s.HoldingCost, s.TotalCost, marker}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("xlsx: fila %d de %s: %w", row, sheet, err)
	}
	return nil
}
