package eoq

import (
	"fmt"
	"math"
)

// DefaultSampleCount puntos por defecto de la curva de costos.
const DefaultSampleCount = 200

// MaxSampleCount tope de puntos por curva; el número de muestras llega del cliente.
const MaxSampleCount = 10_000

// optimumTolerance distancia relativa bajo la cual la EOQ coincide con un punto de la malla.
const optimumTolerance = 1e-9

// CostCurveSample un punto de la curva costo vs. cantidad.
type CostCurveSample struct {
	Quantity     float64
	OrderingCost float64
	HoldingCost  float64
	TotalCost    float64
	IsOptimum    bool
}

// RangePolicy decide el intervalo de cantidades [min, max] a muestrear.
type RangePolicy interface {
	Bounds(p InventoryParameters, eoq float64) (min, max float64)
	Name() string
}

// AroundEOQ muestrea [max(Floor, Low·EOQ), High·EOQ].
// Con Floor = 100 y Low = 0 reproduce el rango [100, 1.5·EOQ].
type AroundEOQ struct {
	Floor float64
	Low   float64
	High  float64
}

func (a AroundEOQ) Bounds(_ InventoryParameters, eoq float64) (float64, float64) {
	return math.Max(a.Floor, a.Low*eoq), a.High * eoq
}

func (AroundEOQ) Name() string { return "around_eoq" }

// FullDemand muestrea [1, D].
type FullDemand struct{}

func (FullDemand) Bounds(p InventoryParameters, _ float64) (float64, float64) {
	return 1, p.AnnualDemand
}

func (FullDemand) Name() string { return "full_demand" }

// Fixed muestrea un intervalo explícito.
type Fixed struct {
	Min float64
	Max float64
}

func (f Fixed) Bounds(InventoryParameters, float64) (float64, float64) { return f.Min, f.Max }

func (Fixed) Name() string { return "fixed" }

// DefaultRange [max(1, 0.5·EOQ), 1.5·EOQ].
var DefaultRange = AroundEOQ{Floor: 1, Low: 0.5, High: 1.5}

// ParseRangePolicy traduce el nombre de una política. Para "fixed" usa min/max;
// para "around_eoq" usa base como plantilla de factores.
func ParseRangePolicy(name string, base AroundEOQ, min, max float64) (RangePolicy, error) {
	switch name {
	case "", "around_eoq":
		return base, nil
	case "full_demand":
		return FullDemand{}, nil
	case "fixed":
		return Fixed{Min: min, Max: max}, nil
	default:
		return nil, &InvalidRangeError{Min: min, Max: max, Reason: fmt.Sprintf("política de rango desconocida %q", name)}
	}
}

// CurveConfig opciones de muestreo; los valores cero aplican los defaults.
type CurveConfig struct {
	SampleCount int
	Range       RangePolicy
}

// SampleCostCurve genera SampleCount cantidades equiespaciadas en el rango de la
// política y calcula los costos en cada una. Si la EOQ cae dentro del rango y no
// coincide con un punto de la malla, se inserta en su posición ordenada, de modo
// que la secuencia contiene el mínimo exacto (marcado con IsOptimum).
func SampleCostCurve(p InventoryParameters, res Result, cfg CurveConfig) ([]CostCurveSample, error) {
	h, err := p.Validate()
	if err != nil {
		return nil, err
	}
	n := cfg.SampleCount
	if n == 0 {
		n = DefaultSampleCount
	}
	policy := cfg.Range
	if policy == nil {
		policy = DefaultRange
	}

	lo, hi := policy.Bounds(p, res.EOQ)
	if n < 2 {
		return nil, &InvalidRangeError{Min: lo, Max: hi, SampleCount: n, Reason: "se requieren al menos 2 muestras"}
	}
	if n > MaxSampleCount {
		return nil, &InvalidRangeError{Min: lo, Max: hi, SampleCount: n, Reason: fmt.Sprintf("como máximo %d muestras", MaxSampleCount)}
	}
	if !isFinite(lo) || !isFinite(hi) {
		return nil, &InvalidRangeError{Min: lo, Max: hi, SampleCount: n, Reason: "límites no finitos"}
	}
	if lo <= 0 {
		return nil, &InvalidRangeError{Min: lo, Max: hi, SampleCount: n, Reason: "el rango incluye cantidades no positivas"}
	}
	if hi <= lo {
		return nil, &InvalidRangeError{Min: lo, Max: hi, SampleCount: n, Reason: "el máximo debe ser mayor que el mínimo"}
	}

	d, s, q := p.AnnualDemand, p.OrderingCost, res.EOQ
	insertOptimum := q > lo && q < hi
	samples := make([]CostCurveSample, 0, n+1)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		if insertOptimum && x >= q {
			if math.Abs(x-q) > optimumTolerance*q {
				opt := costAt(d, s, h, q)
				opt.IsOptimum = true
				samples = append(samples, opt)
			} else {
				x = q
			}
			insertOptimum = false
		}
		sample := costAt(d, s, h, x)
		sample.IsOptimum = x == q && q > 0
		samples = append(samples, sample)
	}
	return samples, nil
}

// MinCostSample índice de la muestra con menor costo total (-1 si no hay muestras).
func MinCostSample(samples []CostCurveSample) int {
	best := -1
	for i, s := range samples {
		if best < 0 || s.TotalCost < samples[best].TotalCost {
			best = i
		}
	}
	return best
}

// OptimumIndex índice de la muestra marcada como óptimo, o de la más cercana a eoq.
func OptimumIndex(samples []CostCurveSample, eoq float64) int {
	best := -1
	for i, s := range samples {
		if s.IsOptimum {
			return i
		}
		if best < 0 || math.Abs(s.Quantity-eoq) < math.Abs(samples[best].Quantity-eoq) {
			best = i
		}
	}
	return best
}
