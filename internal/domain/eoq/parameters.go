// Package eoq implementa el modelo clásico de Cantidad Económica de Pedido
// (Economic Order Quantity) como servicio de dominio puro:
//
//	EOQ = √(2·D·S / H)
//
// donde D es la demanda anual, S el costo por pedido y H el costo de mantener
// una unidad en inventario durante un año. No hay estado ni efectos colaterales:
// todas las funciones son deterministas y seguras para uso concurrente.
package eoq

import "math"

// HoldingMethod identifica la forma en que se expresó el costo de mantenimiento.
type HoldingMethod string

const (
	HoldingFlat       HoldingMethod = "flat"
	HoldingPercentage HoldingMethod = "percentage"
)

// HoldingCost es la especificación del costo de mantenimiento. Es una variante
// cerrada: solo FlatHoldingCost y PercentageHoldingCost la implementan.
type HoldingCost interface {
	// PerUnitPerYear resuelve H (costo por unidad por año).
	PerUnitPerYear() (float64, error)
	Method() HoldingMethod
	sealed()
}

// FlatHoldingCost costo de mantenimiento expresado directamente por unidad y año.
type FlatHoldingCost struct {
	Amount float64
}

// PerUnitPerYear devuelve el monto tal cual; debe ser estrictamente positivo.
func (f FlatHoldingCost) PerUnitPerYear() (float64, error) {
	if !isFinite(f.Amount) || f.Amount <= 0 {
		return 0, &InvalidInputError{Field: "holding_cost", Value: f.Amount, Reason: "debe ser mayor que cero"}
	}
	return f.Amount, nil
}

func (FlatHoldingCost) Method() HoldingMethod { return HoldingFlat }
func (FlatHoldingCost) sealed()               {}

// PercentageHoldingCost costo de mantenimiento como porcentaje del precio unitario.
// Percentage es un porcentaje entero (40 = 40 %), en el intervalo (0, 100].
type PercentageHoldingCost struct {
	UnitPrice  float64
	Percentage float64
}

// PerUnitPerYear resuelve H = UnitPrice × Percentage / 100.
func (p PercentageHoldingCost) PerUnitPerYear() (float64, error) {
	if !isFinite(p.UnitPrice) || p.UnitPrice <= 0 {
		return 0, &InvalidInputError{Field: "unit_price", Value: p.UnitPrice, Reason: "debe ser mayor que cero"}
	}
	if !isFinite(p.Percentage) || p.Percentage <= 0 || p.Percentage > 100 {
		return 0, &InvalidInputError{Field: "holding_pct", Value: p.Percentage, Reason: "debe estar en (0, 100]"}
	}
	h := p.UnitPrice * (p.Percentage / 100)
	if h <= 0 {
		// underflow con precios o porcentajes diminutos
		return 0, &InvalidInputError{Field: "holding_pct", Value: p.Percentage, Reason: "el costo de mantenimiento resultante no es positivo"}
	}
	return h, nil
}

func (PercentageHoldingCost) Method() HoldingMethod { return HoldingPercentage }
func (PercentageHoldingCost) sealed()               {}

// InventoryParameters agrupa las entradas del modelo.
type InventoryParameters struct {
	AnnualDemand float64 // unidades/año, > 0
	OrderingCost float64 // moneda/pedido, >= 0
	Holding      HoldingCost
}

// Validate comprueba los invariantes y devuelve H ya resuelto.
func (p InventoryParameters) Validate() (float64, error) {
	if !isFinite(p.AnnualDemand) || p.AnnualDemand <= 0 {
		return 0, &InvalidInputError{Field: "annual_demand", Value: p.AnnualDemand, Reason: "debe ser mayor que cero"}
	}
	if !isFinite(p.OrderingCost) || p.OrderingCost < 0 {
		return 0, &InvalidInputError{Field: "ordering_cost", Value: p.OrderingCost, Reason: "no puede ser negativo"}
	}
	if p.Holding == nil {
		return 0, &InvalidInputError{Field: "holding_cost", Reason: "especificación de costo de mantenimiento requerida"}
	}
	return p.Holding.PerUnitPerYear()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
