package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDegenerateSolution = errors.New("solución degenerada")
	ErrInvalidRange       = errors.New("rango de muestreo inválido")
	ErrNoRows             = errors.New("sin filas para procesar")
)
