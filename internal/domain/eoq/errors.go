package eoq

import (
	"fmt"

	"github.com/jhoicas/inventario-eoq/internal/domain"
)

// InvalidInputError algún parámetro viola los invariantes del modelo.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s (valor: %g)", domain.ErrInvalidInput, e.Field, e.Reason, e.Value)
}

func (e *InvalidInputError) Unwrap() error { return domain.ErrInvalidInput }

// DegenerateSolutionError las entradas son válidas por separado pero el
// resultado es matemáticamente degenerado (p. ej. S = 0 ⇒ EOQ = 0).
type DegenerateSolutionError struct {
	Reason string
}

func (e *DegenerateSolutionError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrDegenerateSolution, e.Reason)
}

func (e *DegenerateSolutionError) Unwrap() error { return domain.ErrDegenerateSolution }

// InvalidRangeError el rango de cantidades o el número de muestras no sirve para graficar.
type InvalidRangeError struct {
	Min         float64
	Max         float64
	SampleCount int
	Reason      string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: %s (min=%g, max=%g, muestras=%d)", domain.ErrInvalidRange, e.Reason, e.Min, e.Max, e.SampleCount)
}

func (e *InvalidRangeError) Unwrap() error { return domain.ErrInvalidRange }
