package inventory

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/inventario-eoq/internal/application/dto"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
	"github.com/jhoicas/inventario-eoq/pkg/money"
)

// ReportData todo lo necesario para representar un cálculo EOQ (PDF, gráfico, planilla).
type ReportData struct {
	CalculationID string
	GeneratedAt   time.Time
	Input         InputSummary
	Result        dto.EOQResultDTO
	Display       dto.EOQDisplayDTO
	Samples       []eoq.CostCurveSample
	OptimumIndex  int
	RangePolicy   string
	Format        *money.Formatter
}

// InputSummary parámetros de entrada ya formateados para mostrar.
type InputSummary struct {
	AnnualDemand  string
	OrderingCost  string
	HoldingMethod string
	HoldingCost   string // H resuelto
	UnitPrice     string // solo método porcentual
	HoldingPct    string // solo método porcentual
}

// ReportGenerator genera el informe PDF del cálculo.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, data ReportData) ([]byte, error)
}

// ChartRenderer dibuja la curva de costos con la EOQ marcada.
type ChartRenderer interface {
	RenderChart(ctx context.Context, data ReportData) ([]byte, error)
}

// CurveExporter exporta resultado y curva a una planilla.
type CurveExporter interface {
	ExportCurve(ctx context.Context, data ReportData) ([]byte, error)
}

// BatchRow fila leída de una planilla de importación.
// Si ParseError no está vacío la fila no pudo interpretarse y Request no es válido.
type BatchRow struct {
	Row        int
	Request    dto.EOQRequest
	ParseError string
}

// BatchReader lee filas de parámetros desde una planilla.
type BatchReader interface {
	ReadRows(ctx context.Context, r io.Reader) ([]BatchRow, error)
}
