// eoq calcula la cantidad económica de pedido desde la línea de comandos.
//
// Uso:
//
//	eoq --demand 1000 --ordering-cost 50000 --holding-cost 10000
//	eoq --demand 1200 --ordering-cost 15000000 --unit-price 1000000 --holding-pct 40 --curve 10
//	eoq --demand 1000 --ordering-cost 50000 --holding-cost 10000 --out informe.pdf
//	eoq --demand 1000 --ordering-cost 50000 --holding-cost 10000 --curve 5 --range-min 80 --range-max 120
//
// Códigos de salida: 0 ok, 1 entrada o rango inválido, 2 solución degenerada (S = 0).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-eoq/internal/application/dto"
	"github.com/jhoicas/inventario-eoq/internal/application/inventory"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
	infrachart "github.com/jhoicas/inventario-eoq/internal/infrastructure/chart"
	infrapdf "github.com/jhoicas/inventario-eoq/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/inventario-eoq/internal/infrastructure/xlsx"
	"github.com/jhoicas/inventario-eoq/pkg/logger"
	"github.com/jhoicas/inventario-eoq/pkg/money"
)

const (
	exitOK         = 0
	exitInvalid    = 1
	exitDegenerate = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("eoq", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	demand := fs.Float64("demand", 0, "demanda anual (D), unidades/año")
	ordering := fs.Float64("ordering-cost", 0, "costo por pedido (S)")
	holding := fs.Float64("holding-cost", 0, "costo de mantenimiento por unidad/año (H)")
	price := fs.Float64("unit-price", 0, "precio unitario (método porcentual)")
	pct := fs.Float64("holding-pct", 0, "porcentaje anual de mantenimiento, 40 = 40 %")
	locale := fs.String("locale", "id", "locale para los montos")
	currency := fs.String("currency", "Rp", "símbolo de moneda")
	curve := fs.Int("curve", 0, "muestras de la curva a imprimir (0 = ninguna)")
	policy := fs.String("range", "", "política de rango: around_eoq (default), full_demand, fixed")
	rangeMin := fs.Float64("range-min", 0, "cantidad mínima graficada (política fixed)")
	rangeMax := fs.Float64("range-max", 0, "cantidad máxima graficada (política fixed)")
	out := fs.String("out", "", "escribe el informe: .pdf (informe), .xlsx (curva), -grafico.pdf (gráfico)")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	req := dto.EOQRequest{
		AnnualDemand: decimal.NewFromFloat(*demand),
		OrderingCost: decimal.NewFromFloat(*ordering),
		RangePolicy:  *policy,
	}
	if fs.Changed("unit-price") || fs.Changed("holding-pct") {
		req.HoldingMethod = string(eoq.HoldingPercentage)
		req.UnitPrice = decPtr(*price)
		req.HoldingPct = decPtr(*pct)
	} else {
		req.HoldingMethod = string(eoq.HoldingFlat)
		req.HoldingCost = decPtr(*holding)
	}
	if *curve > 0 {
		req.SampleCount = *curve
	}
	// con ambas cotas y sin --range el caso de uso asume fixed
	if fs.Changed("range-min") {
		req.RangeMin = decPtr(*rangeMin)
	}
	if fs.Changed("range-max") {
		req.RangeMax = decPtr(*rangeMax)
	}

	uc := inventory.NewEOQUseCase(
		inventory.CurveDefaults{},
		money.NewFormatter(*locale, *currency),
		logger.Nop(),
		infrapdf.NewMarotoReportGenerator(),
		infrachart.NewGofpdfChartRenderer(),
		infraxlsx.NewExcelizeCurveExporter(),
		nil,
	)
	ctx := context.Background()

	resp, err := uc.Calculate(ctx, req)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitCode(err)
	}

	d := resp.Display
	fmt.Fprintf(stdout, "EOQ:                       %s\n", d.EOQ)
	fmt.Fprintf(stdout, "Pedidos por año:           %s\n", d.OrderFrequency)
	fmt.Fprintf(stdout, "Costo anual de pedidos:    %s\n", d.OrderingCostAtEOQ)
	fmt.Fprintf(stdout, "Costo anual mantenimiento: %s\n", d.HoldingCostAtEOQ)
	fmt.Fprintf(stdout, "Costo total anual:         %s\n", d.TotalCost)

	if *curve > 0 {
		f := money.NewFormatter(*locale, *currency)
		tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Cantidad\tPedidos\tMantenimiento\tTotal\t\t")
		for _, p := range resp.Curve.Points {
			mark := ""
			if p.IsOptimum {
				mark = "EOQ"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
				f.Number(p.Quantity), f.Number(p.OrderingCost), f.Number(p.HoldingCost), f.Number(p.TotalCost), mark)
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return exitInvalid
		}
	}

	if *out != "" {
		if err := writeOutput(ctx, uc, req, *out); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return exitInvalid
		}
		fmt.Fprintln(stdout, "archivo escrito:", *out)
	}
	return exitOK
}

func writeOutput(ctx context.Context, uc *inventory.EOQUseCase, req dto.EOQRequest, path string) error {
	var (
		b   []byte
		err error
	)
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, "-grafico.pdf"):
		b, _, err = uc.Chart(ctx, req)
	case filepath.Ext(lower) == ".pdf":
		b, _, err = uc.Report(ctx, req)
	case filepath.Ext(lower) == ".xlsx":
		b, _, err = uc.ExportCurve(ctx, req)
	default:
		return fmt.Errorf("extensión no soportada %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func exitCode(err error) int {
	var degErr *eoq.DegenerateSolutionError
	if errors.As(err, &degErr) {
		return exitDegenerate
	}
	return exitInvalid
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
