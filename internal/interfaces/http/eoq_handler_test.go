package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-eoq/internal/application/dto"
	"github.com/jhoicas/inventario-eoq/internal/application/inventory"
	"github.com/jhoicas/inventario-eoq/internal/infrastructure/chart"
	"github.com/jhoicas/inventario-eoq/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-eoq/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/inventario-eoq/internal/interfaces/http"
	"github.com/jhoicas/inventario-eoq/pkg/logger"
	"github.com/jhoicas/inventario-eoq/pkg/money"
)

const classicBody = `{"annual_demand":1000,"ordering_cost":50000,"holding_cost":10000}`

func buildApp(limiter *apphttp.IPRateLimiter) *fiber.App {
	uc := inventory.NewEOQUseCase(
		inventory.CurveDefaults{},
		money.NewFormatter("id", "Rp"),
		logger.Nop(),
		pdf.NewMarotoReportGenerator(),
		chart.NewGofpdfChartRenderer(),
		xlsx.NewExcelizeCurveExporter(),
		xlsx.NewExcelizeBatchReader(),
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{EOQUC: uc, RateLimiter: limiter})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestCalculate_FlatHolding(t *testing.T) {
	resp := postJSON(t, buildApp(nil), "/api/eoq/calculate", classicBody)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.EOQResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.CalculationID)
	assert.Equal(t, "100", body.Result.EOQ.String())
	assert.Equal(t, "10", body.Result.OrderFrequency.String())
	assert.Equal(t, "1000000", body.Result.TotalCost.String())
	assert.Equal(t, "flat", body.Result.HoldingMethod)
	assert.Equal(t, "Rp 1.000.000,00", body.Display.TotalCost)

	require.NotEmpty(t, body.Curve.Points)
	assert.Equal(t, "around_eoq", body.Curve.RangePolicy)
	opt := body.Curve.Points[body.Curve.OptimumIndex]
	assert.True(t, opt.IsOptimum)
	assert.Equal(t, "100", opt.Quantity.String())
}

func TestCalculate_PercentageMethod(t *testing.T) {
	resp := postJSON(t, buildApp(nil), "/api/eoq/calculate",
		`{"annual_demand":1000,"ordering_cost":50000,"unit_price":25000,"holding_pct":40}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.EOQResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "percentage", body.Result.HoldingMethod)
	assert.Equal(t, "100", body.Result.EOQ.String(), "25000 × 40 % = 10000")
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
		field  string
	}{
		{"demanda negativa", `{"annual_demand":-5,"ordering_cost":50000,"holding_cost":10000}`, http.StatusBadRequest, "VALIDATION", "annual_demand"},
		{"sin costo de mantenimiento", `{"annual_demand":1000,"ordering_cost":50000}`, http.StatusBadRequest, "VALIDATION", "holding_cost"},
		{"porcentaje fuera de rango", `{"annual_demand":1000,"ordering_cost":50000,"unit_price":100,"holding_pct":150}`, http.StatusBadRequest, "VALIDATION", "holding_pct"},
		{"costo de pedido cero", `{"annual_demand":1000,"ordering_cost":0,"holding_cost":10000}`, http.StatusUnprocessableEntity, "DEGENERATE_SOLUTION", ""},
		{"política desconocida", `{"annual_demand":1000,"ordering_cost":50000,"holding_cost":10000,"range_policy":"zigzag"}`, http.StatusBadRequest, "INVALID_RANGE", ""},
		{"rango fijo invertido", `{"annual_demand":1000,"ordering_cost":50000,"holding_cost":10000,"range_policy":"fixed","range_min":300,"range_max":200}`, http.StatusBadRequest, "INVALID_RANGE", ""},
		{"muestras sin tope", `{"annual_demand":"1000","ordering_cost":"50000","holding_cost":"10000","sample_count":9223372036854775807}`, http.StatusBadRequest, "INVALID_RANGE", ""},
		{"muestras sobre el máximo", `{"annual_demand":1000,"ordering_cost":50000,"holding_cost":10000,"sample_count":10001}`, http.StatusBadRequest, "INVALID_RANGE", ""},
		{"cotas con around_eoq", `{"annual_demand":1000,"ordering_cost":50000,"holding_cost":10000,"range_policy":"around_eoq","range_min":10,"range_max":20}`, http.StatusBadRequest, "INVALID_RANGE", ""},
		{"json roto", `{"annual_demand":`, http.StatusBadRequest, "INVALID_BODY", ""},
	}
	app := buildApp(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/eoq/calculate", tt.body)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, resp)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func TestCompare_FlatIsCheaper(t *testing.T) {
	resp := postJSON(t, buildApp(nil), "/api/eoq/compare",
		`{"annual_demand":1000,"ordering_cost":50000,"holding_cost":10000,"unit_price":100000,"holding_pct":40}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CompareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "flat", body.CheaperMethod)
	assert.Equal(t, "100", body.Flat.EOQ.String())
	assert.Equal(t, "50", body.Percentage.EOQ.String())
	assert.True(t, body.TotalCostDelta.IsPositive())
}

func TestCostAt_ExtraCostOverOptimum(t *testing.T) {
	resp := postJSON(t, buildApp(nil), "/api/eoq/cost-at",
		`{"annual_demand":1000,"ordering_cost":50000,"holding_cost":10000,"quantity":200}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CostAtResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "250000", body.Point.OrderingCost.String())
	assert.Equal(t, "1000000", body.Point.HoldingCost.String())
	assert.Equal(t, "1250000", body.Point.TotalCost.String())
	assert.Equal(t, "250000", body.ExtraCost.String())
	assert.Contains(t, body.Display, "Rp 1.250.000,00")
}

func TestDownloads(t *testing.T) {
	tests := []struct {
		path   string
		mime   string
		prefix string
		file   string
	}{
		{"/api/eoq/report", "application/pdf", "%PDF", "eoq-"},
		{"/api/eoq/chart", "application/pdf", "%PDF", "eoq-grafico-"},
		{"/api/eoq/curve.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK", "eoq-curva-"},
	}
	app := buildApp(nil)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := postJSON(t, app, tt.path, classicBody)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.mime, resp.Header.Get("Content-Type"))
			assert.Contains(t, resp.Header.Get("Content-Disposition"), tt.file)

			b, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(b, []byte(tt.prefix)))
		})
	}
}

func TestDownloads_InvalidInput(t *testing.T) {
	resp := postJSON(t, buildApp(nil), "/api/eoq/report", `{"annual_demand":0,"ordering_cost":50000,"holding_cost":10000}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "annual_demand", decodeError(t, resp).Field)
}

func uploadWorkbook(t *testing.T, app *fiber.App, rows [][]any) *http.Response {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		vals := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &vals))
	}
	xbuf, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "lote.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xbuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/eoq/batch", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestBatch_MixedRows(t *testing.T) {
	resp := uploadWorkbook(t, buildApp(nil), [][]any{
		{"demanda", "costo_pedido", "costo_mantenimiento", "precio_unitario", "pct"},
		{1000, 50000, 10000},
		{1000, 0, 10000},
		{1000, 50000, "", 25000, 40},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.BatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.Succeeded)
	assert.Equal(t, 1, body.Failed)
	require.Len(t, body.Rows, 3)
	assert.Equal(t, "100", body.Rows[0].Result.EOQ.String())
	assert.NotEmpty(t, body.Rows[1].Error)
	assert.Equal(t, "percentage", body.Rows[2].Result.HoldingMethod)
}

func TestBatch_FileErrors(t *testing.T) {
	app := buildApp(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/eoq/batch", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Code)

	resp2 := uploadWorkbook(t, app, [][]any{{"demanda", "costo_pedido", "costo_mantenimiento"}})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Equal(t, "EMPTY_FILE", decodeError(t, resp2).Code)
}

func TestRouter_RateLimited(t *testing.T) {
	app := buildApp(apphttp.NewIPRateLimiter(0.001, 1))

	first := postJSON(t, app, "/api/eoq/calculate", classicBody)
	defer first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second := postJSON(t, app, "/api/eoq/calculate", classicBody)
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, second).Code)
}
