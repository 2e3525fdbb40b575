package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-eoq/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EOQUC       *inventory.EOQUseCase
	RateLimiter *IPRateLimiter // nil = sin límite
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	eoqGroup := api.Group("/eoq")
	if deps.RateLimiter != nil {
		eoqGroup.Use(deps.RateLimiter.Middleware())
	}

	h := NewEOQHandler(deps.EOQUC)
	eoqGroup.Post("/calculate", h.Calculate)
	eoqGroup.Post("/compare", h.Compare)
	eoqGroup.Post("/cost-at", h.CostAt)
	eoqGroup.Post("/report", h.Report)
	eoqGroup.Post("/chart", h.Chart)
	eoqGroup.Post("/curve.xlsx", h.ExportCurve)
	eoqGroup.Post("/batch", h.Batch)
}
