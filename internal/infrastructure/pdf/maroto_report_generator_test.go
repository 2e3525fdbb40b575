package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/inventario-eoq/internal/application/inventory"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
	"github.com/jhoicas/inventario-eoq/pkg/money"
)

func reportData(t *testing.T) appinventory.ReportData {
	t.Helper()
	p := eoq.InventoryParameters{
		AnnualDemand: 1200,
		OrderingCost: 15000000,
		Holding:      eoq.PercentageHoldingCost{UnitPrice: 1000000, Percentage: 40},
	}
	res, err := eoq.Evaluate(p)
	require.NoError(t, err)
	samples, err := eoq.SampleCostCurve(p, res, eoq.CurveConfig{})
	require.NoError(t, err)

	f := money.NewFormatter("id", "Rp")
	return appinventory.ReportData{
		CalculationID: "00000000-0000-0000-0000-00000000e0q1",
		GeneratedAt:   time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Input: appinventory.InputSummary{
			AnnualDemand:  f.Float(1200),
			OrderingCost:  f.FloatCurrency(15000000),
			HoldingMethod: "percentage",
			HoldingCost:   f.FloatCurrency(res.HoldingCostPerUnit),
			UnitPrice:     f.FloatCurrency(1000000),
			HoldingPct:    "40 %",
		},
		Samples:      samples,
		OptimumIndex: eoq.OptimumIndex(samples, res.EOQ),
		RangePolicy:  "around_eoq",
		Format:       f,
	}
}

func TestGenerateReport_ProducesPDF(t *testing.T) {
	b, err := NewMarotoReportGenerator().GenerateReport(context.Background(), reportData(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "debe comenzar con la cabecera PDF")
}

func TestGenerateReport_RequiresFormatter(t *testing.T) {
	data := reportData(t)
	data.Format = nil
	_, err := NewMarotoReportGenerator().GenerateReport(context.Background(), data)
	assert.Error(t, err)
}

func TestTableIndexes(t *testing.T) {
	assert.Nil(t, tableIndexes(0, -1, 25))
	assert.Equal(t, []int{0, 1, 2}, tableIndexes(3, 1, 25))

	idx := tableIndexes(201, 100, 25)
	assert.LessOrEqual(t, len(idx), 25)
	assert.Equal(t, 0, idx[0])
	assert.Equal(t, 200, idx[len(idx)-1])
	assert.Contains(t, idx, 100)
	for i := 1; i < len(idx); i++ {
		assert.Greater(t, idx[i], idx[i-1])
	}

	// Óptimo fuera de la malla elegida.
	idx = tableIndexes(201, 37, 25)
	assert.Contains(t, idx, 37)
	assert.LessOrEqual(t, len(idx), 25)
	for i := 1; i < len(idx); i++ {
		assert.Greater(t, idx[i], idx[i-1])
	}
}
