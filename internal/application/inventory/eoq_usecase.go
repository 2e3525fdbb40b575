package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-eoq/internal/application/dto"
	"github.com/jhoicas/inventario-eoq/internal/domain"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
	"github.com/jhoicas/inventario-eoq/pkg/logger"
	"github.com/jhoicas/inventario-eoq/pkg/money"
)

// CurveDefaults valores por defecto del muestreo cuando la petición no los indica.
type CurveDefaults struct {
	SampleCount int
	RangePolicy string
	Range       eoq.AroundEOQ
}

// EOQUseCase orquesta el cálculo EOQ: DTO → parámetros de dominio → fórmula y
// curva → DTOs redondeados, y delega las representaciones (PDF, gráfico, xlsx).
type EOQUseCase struct {
	defaults CurveDefaults
	format   *money.Formatter
	log      *logger.Logger
	report   ReportGenerator
	chart    ChartRenderer
	exporter CurveExporter
	batch    BatchReader
	now      func() time.Time
	newID    func() string
}

// NewEOQUseCase construye el caso de uso. Los puertos pueden ser nil si el
// binario no expone esa representación; la operación devolverá error.
func NewEOQUseCase(
	defaults CurveDefaults,
	format *money.Formatter,
	log *logger.Logger,
	report ReportGenerator,
	chart ChartRenderer,
	exporter CurveExporter,
	batch BatchReader,
) *EOQUseCase {
	if defaults.SampleCount == 0 {
		defaults.SampleCount = eoq.DefaultSampleCount
	}
	if defaults.Range == (eoq.AroundEOQ{}) {
		defaults.Range = eoq.DefaultRange
	}
	if format == nil {
		format = money.NewFormatter("en", "")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EOQUseCase{
		defaults: defaults,
		format:   format,
		log:      log,
		report:   report,
		chart:    chart,
		exporter: exporter,
		batch:    batch,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// calculation resultado interno compartido por todas las representaciones.
type calculation struct {
	id      string
	params  eoq.InventoryParameters
	result  eoq.Result
	samples []eoq.CostCurveSample
	policy  eoq.RangePolicy
	optIdx  int
}

// Calculate evalúa la EOQ y muestrea la curva de costos.
// Errores: *eoq.InvalidInputError, *eoq.DegenerateSolutionError, *eoq.InvalidRangeError (envueltos).
func (uc *EOQUseCase) Calculate(ctx context.Context, req dto.EOQRequest) (*dto.EOQResponse, error) {
	calc, err := uc.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.EOQResponse{
		CalculationID: calc.id,
		Result:        resultDTO(calc.result, calc.params.Holding.Method()),
		Display:       uc.display(calc.result),
		Curve:         curveDTO(calc),
	}, nil
}

// Compare evalúa el mismo D y S con costo de mantenimiento fijo y porcentual.
func (uc *EOQUseCase) Compare(_ context.Context, req dto.CompareRequest) (*dto.CompareResponse, error) {
	cmp, err := eoq.CompareMethods(
		req.AnnualDemand.InexactFloat64(),
		req.OrderingCost.InexactFloat64(),
		eoq.FlatHoldingCost{Amount: req.HoldingCost.InexactFloat64()},
		eoq.PercentageHoldingCost{UnitPrice: req.UnitPrice.InexactFloat64(), Percentage: req.HoldingPct.InexactFloat64()},
	)
	if err != nil {
		uc.logRejected(err)
		return nil, fmt.Errorf("eoq: comparar métodos: %w", err)
	}

	cheaper := string(eoq.HoldingFlat)
	if cmp.TotalCostDelta < 0 {
		cheaper = string(eoq.HoldingPercentage)
	} else if cmp.TotalCostDelta == 0 {
		cheaper = "equal"
	}
	return &dto.CompareResponse{
		Flat:           resultDTO(cmp.Flat, eoq.HoldingFlat),
		Percentage:     resultDTO(cmp.Percentage, eoq.HoldingPercentage),
		EOQDelta:       money.Round(cmp.EOQDelta),
		TotalCostDelta: money.Round(cmp.TotalCostDelta),
		CheaperMethod:  cheaper,
	}, nil
}

// CostAt costo anual de pedir req.Quantity unidades frente al costo en la EOQ.
func (uc *EOQUseCase) CostAt(_ context.Context, req dto.CostAtRequest) (*dto.CostAtResponse, error) {
	params, err := ToParameters(req.EOQRequest)
	if err != nil {
		uc.logRejected(err)
		return nil, fmt.Errorf("eoq: parámetros: %w", err)
	}
	res, err := eoq.Evaluate(params)
	if err != nil {
		uc.logRejected(err)
		return nil, fmt.Errorf("eoq: evaluar: %w", err)
	}
	point, err := eoq.CostAt(params, req.Quantity.InexactFloat64())
	if err != nil {
		return nil, fmt.Errorf("eoq: costo en cantidad: %w", err)
	}
	extra := point.TotalCost - res.TotalCost
	return &dto.CostAtResponse{
		Point:     pointDTO(point),
		Optimum:   resultDTO(res, params.Holding.Method()),
		ExtraCost: money.Round(extra),
		Display: fmt.Sprintf("%s / año (%s sobre el óptimo)",
			uc.format.FloatCurrency(point.TotalCost), uc.format.FloatCurrency(extra)),
	}, nil
}

// Report genera el informe PDF. Devuelve bytes y nombre de archivo sugerido.
func (uc *EOQUseCase) Report(ctx context.Context, req dto.EOQRequest) ([]byte, string, error) {
	if uc.report == nil {
		return nil, "", errors.New("eoq: generador de informes no configurado")
	}
	data, err := uc.reportData(ctx, req)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.report.GenerateReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("eoq: generar informe: %w", err)
	}
	return b, "eoq-" + data.CalculationID + ".pdf", nil
}

// Chart dibuja la curva de costos en PDF.
func (uc *EOQUseCase) Chart(ctx context.Context, req dto.EOQRequest) ([]byte, string, error) {
	if uc.chart == nil {
		return nil, "", errors.New("eoq: renderizador de gráficos no configurado")
	}
	data, err := uc.reportData(ctx, req)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.chart.RenderChart(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("eoq: dibujar gráfico: %w", err)
	}
	return b, "eoq-grafico-" + data.CalculationID + ".pdf", nil
}

// ExportCurve exporta resultado y curva a xlsx.
func (uc *EOQUseCase) ExportCurve(ctx context.Context, req dto.EOQRequest) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", errors.New("eoq: exportador de planillas no configurado")
	}
	data, err := uc.reportData(ctx, req)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.exporter.ExportCurve(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("eoq: exportar curva: %w", err)
	}
	return b, "eoq-curva-" + data.CalculationID + ".xlsx", nil
}

// EvaluateBatch evalúa cada fila de la planilla. Las filas inválidas no abortan
// el lote: quedan reportadas con su mensaje de error.
func (uc *EOQUseCase) EvaluateBatch(ctx context.Context, r io.Reader) (*dto.BatchResponse, error) {
	if uc.batch == nil {
		return nil, errors.New("eoq: lector de planillas no configurado")
	}
	rows, err := uc.batch.ReadRows(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("eoq: leer planilla: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNoRows
	}

	out := &dto.BatchResponse{Total: len(rows), Rows: make([]dto.BatchRowDTO, 0, len(rows))}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := dto.BatchRowDTO{Row: row.Row}
		if row.ParseError != "" {
			item.Error = row.ParseError
			out.Failed++
			out.Rows = append(out.Rows, item)
			continue
		}
		params, err := ToParameters(row.Request)
		if err == nil {
			var res eoq.Result
			res, err = eoq.Evaluate(params)
			if err == nil {
				resDTO := resultDTO(res, params.Holding.Method())
				item.Result = &resDTO
			}
		}
		if err != nil {
			item.Error = err.Error()
			out.Failed++
		} else {
			out.Succeeded++
		}
		out.Rows = append(out.Rows, item)
	}

	uc.log.Info().Int("total", out.Total).Int("failed", out.Failed).Msg("lote EOQ evaluado")
	return out, nil
}

func (uc *EOQUseCase) compute(_ context.Context, req dto.EOQRequest) (*calculation, error) {
	params, err := ToParameters(req)
	if err != nil {
		uc.logRejected(err)
		return nil, fmt.Errorf("eoq: parámetros: %w", err)
	}
	res, err := eoq.Evaluate(params)
	if err != nil {
		uc.logRejected(err)
		return nil, fmt.Errorf("eoq: evaluar: %w", err)
	}

	policy, cfg, err := uc.curveConfig(req)
	if err != nil {
		return nil, fmt.Errorf("eoq: política de rango: %w", err)
	}
	samples, err := eoq.SampleCostCurve(params, res, cfg)
	if err != nil {
		uc.logRejected(err)
		return nil, fmt.Errorf("eoq: muestrear curva: %w", err)
	}

	calc := &calculation{
		id:      uc.newID(),
		params:  params,
		result:  res,
		samples: samples,
		policy:  policy,
		optIdx:  eoq.OptimumIndex(samples, res.EOQ),
	}
	uc.log.Debug().
		Str("calculation_id", calc.id).
		Str("holding_method", string(params.Holding.Method())).
		Float64("eoq", res.EOQ).
		Float64("total_cost", res.TotalCost).
		Int("samples", len(samples)).
		Msg("EOQ calculada")
	return calc, nil
}

func (uc *EOQUseCase) curveConfig(req dto.EOQRequest) (eoq.RangePolicy, eoq.CurveConfig, error) {
	n := req.SampleCount
	if n == 0 {
		n = uc.defaults.SampleCount
	}
	if n > eoq.MaxSampleCount {
		return nil, eoq.CurveConfig{}, &eoq.InvalidRangeError{
			SampleCount: n, Reason: fmt.Sprintf("como máximo %d muestras", eoq.MaxSampleCount),
		}
	}

	// Con range_min y range_max sin política explícita se asume "fixed".
	hasBounds := req.RangeMin != nil || req.RangeMax != nil
	name := strings.ToLower(strings.TrimSpace(req.RangePolicy))
	switch {
	case name == "" && req.RangeMin != nil && req.RangeMax != nil:
		name = "fixed"
	case name == "" && hasBounds:
		return nil, eoq.CurveConfig{}, &eoq.InvalidRangeError{
			Min: optFloat(req.RangeMin), Max: optFloat(req.RangeMax),
			Reason: "el rango fijo requiere range_min y range_max",
		}
	case name == "":
		name = uc.defaults.RangePolicy
	case name != "fixed" && hasBounds:
		return nil, eoq.CurveConfig{}, &eoq.InvalidRangeError{
			Min: optFloat(req.RangeMin), Max: optFloat(req.RangeMax),
			Reason: fmt.Sprintf("range_min y range_max solo aplican a la política fixed, no a %q", name),
		}
	}
	policy, err := eoq.ParseRangePolicy(name, uc.defaults.Range, optFloat(req.RangeMin), optFloat(req.RangeMax))
	if err != nil {
		return nil, eoq.CurveConfig{}, err
	}
	return policy, eoq.CurveConfig{SampleCount: n, Range: policy}, nil
}

func (uc *EOQUseCase) reportData(ctx context.Context, req dto.EOQRequest) (ReportData, error) {
	calc, err := uc.compute(ctx, req)
	if err != nil {
		return ReportData{}, err
	}
	in := InputSummary{
		AnnualDemand:  uc.format.Float(calc.params.AnnualDemand),
		OrderingCost:  uc.format.FloatCurrency(calc.params.OrderingCost),
		HoldingMethod: string(calc.params.Holding.Method()),
		HoldingCost:   uc.format.FloatCurrency(calc.result.HoldingCostPerUnit),
	}
	if pct, ok := calc.params.Holding.(eoq.PercentageHoldingCost); ok {
		in.UnitPrice = uc.format.FloatCurrency(pct.UnitPrice)
		in.HoldingPct = uc.format.Float(pct.Percentage) + " %"
	}
	return ReportData{
		CalculationID: calc.id,
		GeneratedAt:   uc.now(),
		Input:         in,
		Result:        resultDTO(calc.result, calc.params.Holding.Method()),
		Display:       uc.display(calc.result),
		Samples:       calc.samples,
		OptimumIndex:  calc.optIdx,
		RangePolicy:   calc.policy.Name(),
		Format:        uc.format,
	}, nil
}

func (uc *EOQUseCase) display(res eoq.Result) dto.EOQDisplayDTO {
	return dto.EOQDisplayDTO{
		EOQ:                uc.format.Float(res.EOQ) + " unidades",
		OrderFrequency:     uc.format.Float(res.OrderFrequency) + " pedidos/año",
		OrderingCostAtEOQ:  uc.format.FloatCurrency(res.OrderingCostAtEOQ),
		HoldingCostAtEOQ:   uc.format.FloatCurrency(res.HoldingCostAtEOQ),
		TotalCost:          uc.format.FloatCurrency(res.TotalCost),
		HoldingCostPerUnit: uc.format.FloatCurrency(res.HoldingCostPerUnit),
	}
}

// logRejected registra entradas rechazadas; no son errores del servidor.
func (uc *EOQUseCase) logRejected(err error) {
	switch {
	case errors.Is(err, domain.ErrDegenerateSolution):
		uc.log.Warn().Err(err).Msg("solución EOQ degenerada")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRange):
		uc.log.Debug().Err(err).Msg("parámetros EOQ rechazados")
	}
}

// ToParameters convierte la petición en parámetros de dominio.
// El método de mantenimiento se infiere si no viene: unit_price ⇒ percentage.
func ToParameters(req dto.EOQRequest) (eoq.InventoryParameters, error) {
	p := eoq.InventoryParameters{
		AnnualDemand: req.AnnualDemand.InexactFloat64(),
		OrderingCost: req.OrderingCost.InexactFloat64(),
	}

	method := eoq.HoldingMethod(strings.ToLower(strings.TrimSpace(req.HoldingMethod)))
	if method == "" {
		method = eoq.HoldingFlat
		if req.UnitPrice != nil {
			method = eoq.HoldingPercentage
		}
	}

	switch method {
	case eoq.HoldingFlat:
		if req.HoldingCost == nil {
			return p, &eoq.InvalidInputError{Field: "holding_cost", Reason: "es obligatorio con el método flat"}
		}
		p.Holding = eoq.FlatHoldingCost{Amount: req.HoldingCost.InexactFloat64()}
	case eoq.HoldingPercentage:
		if req.UnitPrice == nil {
			return p, &eoq.InvalidInputError{Field: "unit_price", Reason: "es obligatorio con el método percentage"}
		}
		if req.HoldingPct == nil {
			return p, &eoq.InvalidInputError{Field: "holding_pct", Reason: "es obligatorio con el método percentage"}
		}
		p.Holding = eoq.PercentageHoldingCost{
			UnitPrice:  req.UnitPrice.InexactFloat64(),
			Percentage: req.HoldingPct.InexactFloat64(),
		}
	default:
		return p, &eoq.InvalidInputError{Field: "holding_method", Reason: fmt.Sprintf("método desconocido %q", req.HoldingMethod)}
	}
	return p, nil
}

func resultDTO(res eoq.Result, method eoq.HoldingMethod) dto.EOQResultDTO {
	return dto.EOQResultDTO{
		EOQ:                money.Round(res.EOQ),
		OrderFrequency:     money.Round(res.OrderFrequency),
		OrderingCostAtEOQ:  money.Round(res.OrderingCostAtEOQ),
		HoldingCostAtEOQ:   money.Round(res.HoldingCostAtEOQ),
		TotalCost:          money.Round(res.TotalCost),
		HoldingCostPerUnit: money.Round(res.HoldingCostPerUnit),
		HoldingMethod:      string(method),
	}
}

func pointDTO(s eoq.CostCurveSample) dto.CurvePointDTO {
	return dto.CurvePointDTO{
		Quantity:     money.Round(s.Quantity),
		OrderingCost: money.Round(s.OrderingCost),
		HoldingCost:  money.Round(s.HoldingCost),
		TotalCost:    money.Round(s.TotalCost),
		IsOptimum:    s.IsOptimum,
	}
}

func curveDTO(calc *calculation) dto.CurveDTO {
	points := make([]dto.CurvePointDTO, 0, len(calc.samples))
	for _, s := range calc.samples {
		points = append(points, pointDTO(s))
	}
	return dto.CurveDTO{
		RangePolicy:  calc.policy.Name(),
		Points:       points,
		OptimumIndex: calc.optIdx,
	}
}

func optFloat(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return d.InexactFloat64()
}
