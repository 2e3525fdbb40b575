package dto

import "github.com/shopspring/decimal"

// EOQRequest body de POST /api/eoq/calculate (y base de los demás endpoints).
// holding_method puede omitirse: si viene unit_price se asume "percentage".
type EOQRequest struct {
	AnnualDemand  decimal.Decimal  `json:"annual_demand"`
	OrderingCost  decimal.Decimal  `json:"ordering_cost"`
	HoldingMethod string           `json:"holding_method,omitempty"` // flat | percentage
	HoldingCost   *decimal.Decimal `json:"holding_cost,omitempty"`   // por unidad por año
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	HoldingPct    *decimal.Decimal `json:"holding_pct,omitempty"` // porcentaje entero: 40 = 40 %
	SampleCount   int              `json:"sample_count,omitempty"`
	RangePolicy   string           `json:"range_policy,omitempty"` // around_eoq | full_demand | fixed
	RangeMin      *decimal.Decimal `json:"range_min,omitempty"`
	RangeMax      *decimal.Decimal `json:"range_max,omitempty"`
}

// EOQResultDTO resultado redondeado a 2 decimales.
type EOQResultDTO struct {
	EOQ                decimal.Decimal `json:"eoq"`
	OrderFrequency     decimal.Decimal `json:"order_frequency"`
	OrderingCostAtEOQ  decimal.Decimal `json:"ordering_cost_at_eoq"`
	HoldingCostAtEOQ   decimal.Decimal `json:"holding_cost_at_eoq"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	HoldingCostPerUnit decimal.Decimal `json:"holding_cost_per_unit"`
	HoldingMethod      string          `json:"holding_method"`
}

// EOQDisplayDTO los mismos valores ya formateados según locale y moneda.
type EOQDisplayDTO struct {
	EOQ                string `json:"eoq"`
	OrderFrequency     string `json:"order_frequency"`
	OrderingCostAtEOQ  string `json:"ordering_cost_at_eoq"`
	HoldingCostAtEOQ   string `json:"holding_cost_at_eoq"`
	TotalCost          string `json:"total_cost"`
	HoldingCostPerUnit string `json:"holding_cost_per_unit"`
}

// CurvePointDTO punto de la curva de costos.
type CurvePointDTO struct {
	Quantity     decimal.Decimal `json:"quantity"`
	OrderingCost decimal.Decimal `json:"ordering_cost"`
	HoldingCost  decimal.Decimal `json:"holding_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	IsOptimum    bool            `json:"is_optimum,omitempty"`
}

// CurveDTO curva muestreada y la política usada.
type CurveDTO struct {
	RangePolicy  string          `json:"range_policy"`
	Points       []CurvePointDTO `json:"points"`
	OptimumIndex int             `json:"optimum_index"`
}

// EOQResponse respuesta de POST /api/eoq/calculate.
type EOQResponse struct {
	CalculationID string        `json:"calculation_id"`
	Result        EOQResultDTO  `json:"result"`
	Display       EOQDisplayDTO `json:"display"`
	Curve         CurveDTO      `json:"curve"`
}

// CompareRequest body de POST /api/eoq/compare: mismo D y S con ambos métodos.
type CompareRequest struct {
	AnnualDemand decimal.Decimal `json:"annual_demand"`
	OrderingCost decimal.Decimal `json:"ordering_cost"`
	HoldingCost  decimal.Decimal `json:"holding_cost"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	HoldingPct   decimal.Decimal `json:"holding_pct"`
}

// CompareResponse resultados de ambos métodos y sus diferencias (porcentual - fijo).
type CompareResponse struct {
	Flat           EOQResultDTO    `json:"flat"`
	Percentage     EOQResultDTO    `json:"percentage"`
	EOQDelta       decimal.Decimal `json:"eoq_delta"`
	TotalCostDelta decimal.Decimal `json:"total_cost_delta"`
	CheaperMethod  string          `json:"cheaper_method"`
}

// CostAtRequest costo anual al pedir una cantidad arbitraria.
type CostAtRequest struct {
	EOQRequest
	Quantity decimal.Decimal `json:"quantity"`
}

// CostAtResponse desglose en la cantidad pedida frente al óptimo.
type CostAtResponse struct {
	Point     CurvePointDTO   `json:"point"`
	Optimum   EOQResultDTO    `json:"optimum"`
	ExtraCost decimal.Decimal `json:"extra_cost"` // costo total(Q) - costo total(EOQ)
	Display   string          `json:"display"`
}

// BatchRowDTO resultado de una fila de la planilla de importación (1-based, sin encabezado).
type BatchRowDTO struct {
	Row    int           `json:"row"`
	Result *EOQResultDTO `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// BatchResponse respuesta de POST /api/eoq/batch.
type BatchResponse struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Rows      []BatchRowDTO `json:"rows"`
}
