package xlsx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-eoq/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-eoq/internal/application/inventory"
)

// Columnas esperadas en la primera hoja (la fila 1 es encabezado):
//
//	A demanda anual | B costo por pedido | C costo de mantenimiento |
//	D precio unitario | E % de mantenimiento
//
// C o (D y E) deben venir; si C está vacío se usa el método porcentual.
const minColumns = 3

// ExcelizeBatchReader implementa inventory.BatchReader.
type ExcelizeBatchReader struct{}

// NewExcelizeBatchReader construye el lector.
func NewExcelizeBatchReader() *ExcelizeBatchReader { return &ExcelizeBatchReader{} }

// ReadRows lee la primera hoja. Las filas en blanco se ignoran; las que no se
// pueden interpretar se devuelven con ParseError.
func (b *ExcelizeBatchReader) ReadRows(ctx context.Context, r io.Reader) ([]appinventory.BatchRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	out := make([]appinventory.BatchRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells := rows[i]
		if isBlank(cells) {
			continue
		}
		req, perr := parseRow(cells)
		row := appinventory.BatchRow{Row: i, Request: req}
		if perr != nil {
			row.ParseError = fmt.Sprintf("fila %d: %v", i, perr)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseRow(cells []string) (dto.EOQRequest, error) {
	if len(cells) < minColumns {
		return dto.EOQRequest{}, fmt.Errorf("se esperaban al menos %d columnas, hay %d", minColumns, len(cells))
	}
	demand, err := parseDecimal(cells, 0, "demanda")
	if err != nil || demand == nil {
		return dto.EOQRequest{}, orMissing(err, "demanda")
	}
	ordering, err := parseDecimal(cells, 1, "costo por pedido")
	if err != nil || ordering == nil {
		return dto.EOQRequest{}, orMissing(err, "costo por pedido")
	}
	req := dto.EOQRequest{AnnualDemand: *demand, OrderingCost: *ordering}

	if req.HoldingCost, err = parseDecimal(cells, 2, "costo de mantenimiento"); err != nil {
		return dto.EOQRequest{}, err
	}
	if req.HoldingCost != nil {
		req.HoldingMethod = "flat"
		return req, nil
	}
	if req.UnitPrice, err = parseDecimal(cells, 3, "precio unitario"); err != nil {
		return dto.EOQRequest{}, err
	}
	if req.HoldingPct, err = parseDecimal(cells, 4, "porcentaje"); err != nil {
		return dto.EOQRequest{}, err
	}
	if req.UnitPrice == nil || req.HoldingPct == nil {
		return dto.EOQRequest{}, fmt.Errorf("falta costo de mantenimiento o precio unitario y porcentaje")
	}
	req.HoldingMethod = "percentage"
	return req, nil
}

// parseDecimal devuelve nil si la celda no existe o está vacía.
// Acepta "40%" en la columna de porcentaje.
func parseDecimal(cells []string, idx int, name string) (*decimal.Decimal, error) {
	if idx >= len(cells) {
		return nil, nil
	}
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cells[idx]), "%"))
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%s no numérico %q", name, cells[idx])
	}
	return &d, nil
}

func orMissing(err error, name string) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("falta %s", name)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
