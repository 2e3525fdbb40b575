package eoq

import "math"

// Result resultado del modelo, derivado por completo de InventoryParameters.
// No se redondea: el redondeo para mostrar es responsabilidad de la presentación.
type Result struct {
	EOQ                float64 // unidades por pedido
	OrderFrequency     float64 // pedidos por año, D / EOQ
	OrderingCostAtEOQ  float64 // (D / EOQ) · S
	HoldingCostAtEOQ   float64 // (EOQ / 2) · H
	TotalCost          float64
	HoldingCostPerUnit float64 // H resuelto
}

// Evaluate calcula la EOQ y sus costos derivados.
//
// Con S = 0 (pedir no cuesta nada) la solución es EOQ = 0 con frecuencia infinita:
// se devuelve un Result con EOQ = 0 y costos en cero junto con *DegenerateSolutionError,
// sin dividir por cero.
func Evaluate(p InventoryParameters) (Result, error) {
	h, err := p.Validate()
	if err != nil {
		return Result{}, err
	}
	if p.OrderingCost == 0 {
		return Result{HoldingCostPerUnit: h}, &DegenerateSolutionError{
			Reason: "con costo de pedido cero la EOQ es 0 y la frecuencia de pedidos no está definida",
		}
	}

	d, s := p.AnnualDemand, p.OrderingCost
	q := math.Sqrt(2 * d * s / h)
	if q == 0 || !isFinite(q) {
		return Result{HoldingCostPerUnit: h}, &DegenerateSolutionError{
			Reason: "la EOQ calculada no es un número positivo finito",
		}
	}

	ordering := (d / q) * s
	holding := (q / 2) * h
	return Result{
		EOQ:                q,
		OrderFrequency:     d / q,
		OrderingCostAtEOQ:  ordering,
		HoldingCostAtEOQ:   holding,
		TotalCost:          ordering + holding,
		HoldingCostPerUnit: h,
	}, nil
}

// CostAt calcula el desglose de costos anuales al pedir q unidades por vez.
func CostAt(p InventoryParameters, q float64) (CostCurveSample, error) {
	h, err := p.Validate()
	if err != nil {
		return CostCurveSample{}, err
	}
	if !isFinite(q) || q <= 0 {
		return CostCurveSample{}, &InvalidInputError{Field: "quantity", Value: q, Reason: "debe ser mayor que cero"}
	}
	return costAt(p.AnnualDemand, p.OrderingCost, h, q), nil
}

func costAt(d, s, h, q float64) CostCurveSample {
	ordering := (d / q) * s
	holding := (q / 2) * h
	return CostCurveSample{
		Quantity:     q,
		OrderingCost: ordering,
		HoldingCost:  holding,
		TotalCost:    ordering + holding,
	}
}

// MethodComparison EOQ calculada con ambos métodos de costo de mantenimiento.
type MethodComparison struct {
	Flat           Result
	Percentage     Result
	EOQDelta       float64 // Percentage.EOQ - Flat.EOQ
	TotalCostDelta float64 // Percentage.TotalCost - Flat.TotalCost
}

// CompareMethods evalúa la misma demanda y costo de pedido con un costo de
// mantenimiento fijo y con uno porcentual.
func CompareMethods(demand, orderingCost float64, flat FlatHoldingCost, pct PercentageHoldingCost) (MethodComparison, error) {
	flatRes, err := Evaluate(InventoryParameters{AnnualDemand: demand, OrderingCost: orderingCost, Holding: flat})
	if err != nil {
		return MethodComparison{}, err
	}
	pctRes, err := Evaluate(InventoryParameters{AnnualDemand: demand, OrderingCost: orderingCost, Holding: pct})
	if err != nil {
		return MethodComparison{}, err
	}
	return MethodComparison{
		Flat:           flatRes,
		Percentage:     pctRes,
		EOQDelta:       pctRes.EOQ - flatRes.EOQ,
		TotalCostDelta: pctRes.TotalCost - flatRes.TotalCost,
	}, nil
}
