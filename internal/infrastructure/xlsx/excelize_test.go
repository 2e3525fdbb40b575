package xlsx_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-eoq/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-eoq/internal/application/inventory"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
	"github.com/jhoicas/inventario-eoq/internal/infrastructure/xlsx"
	"github.com/jhoicas/inventario-eoq/pkg/money"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		vals := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &vals))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestBatchReader_ParsesBothMethods(t *testing.T) {
	buf := workbook(t, [][]any{
		{"demanda", "costo_pedido", "costo_mantenimiento", "precio_unitario", "pct"},
		{1000, 50000, 10000},
		{1200, 15000000, "", 1000000, "40%"},
		{},
		{"mil", 5, 1},
		{10, 5},
		{10, 5, "", 100},
	})

	rows, err := xlsx.NewExcelizeBatchReader().ReadRows(context.Background(), buf)
	require.NoError(t, err)
	require.Len(t, rows, 5, "la fila en blanco se ignora")

	assert.Empty(t, rows[0].ParseError)
	assert.Equal(t, 1, rows[0].Row)
	assert.Equal(t, "flat", rows[0].Request.HoldingMethod)
	assert.Equal(t, "10000", rows[0].Request.HoldingCost.String())

	assert.Empty(t, rows[1].ParseError)
	assert.Equal(t, "percentage", rows[1].Request.HoldingMethod)
	assert.Equal(t, "40", rows[1].Request.HoldingPct.String())
	assert.Equal(t, "1000000", rows[1].Request.UnitPrice.String())

	assert.Contains(t, rows[2].ParseError, "demanda no numérico")
	assert.Contains(t, rows[3].ParseError, "columnas")
	assert.Contains(t, rows[4].ParseError, "falta costo de mantenimiento")
}

func TestBatchReader_HeaderOnly(t *testing.T) {
	rows, err := xlsx.NewExcelizeBatchReader().ReadRows(context.Background(), workbook(t, [][]any{{"demanda"}}))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBatchReader_NotAWorkbook(t *testing.T) {
	_, err := xlsx.NewExcelizeBatchReader().ReadRows(context.Background(), strings.NewReader("no soy un xlsx"))
	assert.Error(t, err)
}

func TestCurveExporter_WritesBothSheets(t *testing.T) {
	p := eoq.InventoryParameters{AnnualDemand: 1000, OrderingCost: 50000, Holding: eoq.FlatHoldingCost{Amount: 10000}}
	res, err := eoq.Evaluate(p)
	require.NoError(t, err)
	samples, err := eoq.SampleCostCurve(p, res, eoq.CurveConfig{SampleCount: 10})
	require.NoError(t, err)

	data := appinventory.ReportData{
		CalculationID: "calc-1",
		Input:         appinventory.InputSummary{AnnualDemand: "1,000.00", HoldingMethod: "flat"},
		Result:        dto.EOQResultDTO{EOQ: money.Round(res.EOQ), TotalCost: money.Round(res.TotalCost)},
		Samples:       samples,
		OptimumIndex:  eoq.OptimumIndex(samples, res.EOQ),
		Format:        money.NewFormatter("en", ""),
	}
	b, err := xlsx.NewExcelizeCurveExporter().ExportCurve(context.Background(), data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Resultado", "Curva"}, f.GetSheetList())

	curve, err := f.GetRows("Curva")
	require.NoError(t, err)
	require.Len(t, curve, len(samples)+1)
	assert.Equal(t, "Cantidad", curve[0][0])
	optRow := curve[data.OptimumIndex+1]
	assert.Equal(t, "100", optRow[0])
	assert.Equal(t, "*", optRow[4])

	id, err := f.GetCellValue("Resultado", "B1")
	require.NoError(t, err)
	assert.Equal(t, "calc-1", id)
	eoqCell, err := f.GetCellValue("Resultado", "B7")
	require.NoError(t, err)
	assert.Equal(t, "100", eoqCell)
}
