package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-eoq/internal/application/inventory"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
	infrachart "github.com/jhoicas/inventario-eoq/internal/infrastructure/chart"
	infrapdf "github.com/jhoicas/inventario-eoq/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/inventario-eoq/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/inventario-eoq/internal/interfaces/http"
	"github.com/jhoicas/inventario-eoq/pkg/config"
	"github.com/jhoicas/inventario-eoq/pkg/logger"
	"github.com/jhoicas/inventario-eoq/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	eoqUC := inventory.NewEOQUseCase(
		inventory.CurveDefaults{
			SampleCount: cfg.EOQ.SampleCount,
			RangePolicy: cfg.EOQ.RangePolicy,
			Range: eoq.AroundEOQ{
				Floor: cfg.EOQ.RangeFloor,
				Low:   cfg.EOQ.RangeLow,
				High:  cfg.EOQ.RangeHigh,
			},
		},
		money.NewFormatter(cfg.Format.Locale, cfg.Format.Currency),
		log,
		infrapdf.NewMarotoReportGenerator(),
		infrachart.NewGofpdfChartRenderer(),
		infraxlsx.NewExcelizeCurveExporter(),
		infraxlsx.NewExcelizeBatchReader(),
	)

	var limiter *httpRouter.IPRateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = httpRouter.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // planillas de lote
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.DocsPath != "" {
		if _, err := os.Stat(cfg.App.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.DocsPath,
				Path:     "docs",
				Title:    "Calculadora EOQ",
			}))
		} else {
			log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EOQUC:       eoqUC,
		RateLimiter: limiter,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
