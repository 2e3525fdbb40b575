package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-eoq/internal/application/dto"
	"github.com/jhoicas/inventario-eoq/internal/application/inventory"
	"github.com/jhoicas/inventario-eoq/internal/domain"
	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// EOQHandler maneja las peticiones HTTP de la calculadora EOQ.
type EOQHandler struct {
	uc *inventory.EOQUseCase
}

// NewEOQHandler construye el handler.
func NewEOQHandler(uc *inventory.EOQUseCase) *EOQHandler {
	return &EOQHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular EOQ y curva de costos
// @Tags         eoq
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EOQRequest  true  "annual_demand, ordering_cost y holding_cost o unit_price + holding_pct"
// @Success      200   {object}  dto.EOQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/eoq/calculate [post]
func (h *EOQHandler) Calculate(c *fiber.Ctx) error {
	var in dto.EOQRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	resp, err := h.uc.Calculate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Compare godoc
// @Summary      Comparar costo de mantenimiento fijo vs. porcentual
// @Tags         eoq
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompareRequest  true  "D, S, holding_cost, unit_price, holding_pct"
// @Success      200   {object}  dto.CompareResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/eoq/compare [post]
func (h *EOQHandler) Compare(c *fiber.Ctx) error {
	var in dto.CompareRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	resp, err := h.uc.Compare(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// CostAt godoc
// @Summary      Costo anual de pedir una cantidad distinta de la EOQ
// @Tags         eoq
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CostAtRequest  true  "parámetros EOQ + quantity"
// @Success      200   {object}  dto.CostAtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/eoq/cost-at [post]
func (h *EOQHandler) CostAt(c *fiber.Ctx) error {
	var in dto.CostAtRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	resp, err := h.uc.CostAt(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Report godoc
// @Summary      Informe PDF del cálculo
// @Tags         eoq
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.EOQRequest  true  "parámetros EOQ"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/eoq/report [post]
func (h *EOQHandler) Report(c *fiber.Ctx) error {
	return h.download(c, mimePDF, h.uc.Report)
}

// Chart godoc
// @Summary      Gráfico PDF de la curva de costos con la EOQ marcada
// @Tags         eoq
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.EOQRequest  true  "parámetros EOQ"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/eoq/chart [post]
func (h *EOQHandler) Chart(c *fiber.Ctx) error {
	return h.download(c, mimePDF, h.uc.Chart)
}

// ExportCurve godoc
// @Summary      Curva de costos en xlsx
// @Tags         eoq
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.EOQRequest  true  "parámetros EOQ"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/eoq/curve.xlsx [post]
func (h *EOQHandler) ExportCurve(c *fiber.Ctx) error {
	return h.download(c, mimeXLSX, h.uc.ExportCurve)
}

// Batch godoc
// @Summary      Evaluar un lote de parámetros desde una planilla xlsx
// @Tags         eoq
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "xlsx: demanda, costo_pedido, costo_mantenimiento, precio_unitario, pct"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/eoq/batch [post]
func (h *EOQHandler) Batch(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_REQUIRED", Message: "se requiere el archivo 'file'"})
	}
	file, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer file.Close()

	resp, err := h.uc.EvaluateBatch(c.UserContext(), file)
	if err != nil {
		if errors.Is(err, domain.ErrNoRows) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_FILE", Message: "la planilla no tiene filas de datos"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	return c.JSON(resp)
}

type downloadFunc func(ctx context.Context, req dto.EOQRequest) ([]byte, string, error)

func (h *EOQHandler) download(c *fiber.Ctx, mime string, fn downloadFunc) error {
	var in dto.EOQRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, filename, err := fn(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, mime)
	c.Attachment(filename)
	return c.Send(b)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// writeError traduce los errores del modelo a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var inErr *eoq.InvalidInputError
	var degErr *eoq.DegenerateSolutionError
	var rngErr *eoq.InvalidRangeError
	switch {
	case errors.As(err, &inErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: inErr.Field + " " + inErr.Reason, Field: inErr.Field,
		})
	case errors.As(err, &degErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "DEGENERATE_SOLUTION", Message: degErr.Reason,
		})
	case errors.As(err, &rngErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_RANGE", Message: rngErr.Reason,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
