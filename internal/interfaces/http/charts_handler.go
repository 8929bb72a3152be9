package http

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-insights/internal/application/charts"
	"github.com/jhoicas/sales-insights/internal/application/dto"
	"github.com/jhoicas/sales-insights/pkg/logger"
)

// ChartsHandler expone los gráficos del dashboard de ventas.
type ChartsHandler struct {
	uc       *charts.UseCase
	validate *validator.Validate
	log      *logger.Logger
}

// NewChartsHandler construye el handler.
func NewChartsHandler(uc *charts.UseCase, validate *validator.Validate, log *logger.Logger) *ChartsHandler {
	return &ChartsHandler{uc: uc, validate: validate, log: log.Component("charts_handler")}
}

// query parsea y valida ?mode=&view=. Devuelve el error listo para responder.
func (h *ChartsHandler) query(c *fiber.Ctx) (dto.ChartQuery, *dto.ErrorResponse) {
	var q dto.ChartQuery
	if err := c.QueryParser(&q); err != nil {
		return q, &dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"}
	}
	q.Mode = strings.ToLower(strings.TrimSpace(q.Mode))
	q.View = strings.ToLower(strings.TrimSpace(q.View))
	if err := h.validate.Struct(q); err != nil {
		return q, &dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "mode debe ser week|month y view count|percent"}
	}
	return q, nil
}

func serve[T any](h *ChartsHandler, c *fiber.Ctx, run func(context.Context, dto.ChartQuery) (*T, error)) error {
	q, bad := h.query(c)
	if bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	out, err := run(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Actividad de ventas por tipo
// @Description  Ventas que cuentan (tienda COMPLETED, online COMPLETED/RETURNED, anticipo no CANCELED)
//               por día de la semana activa (sábado a viernes) o por mes del año en curso.
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "week (default) | month"
// @Success      200  {object}  dto.ChartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/charts/sales [get]
func (h *ChartsHandler) Sales(c *fiber.Ctx) error {
	return serve(h, c, h.uc.SalesActivity)
}

// Income godoc
// @Summary      Ingreso, costo y ganancia
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "week (default) | month"
// @Success      200  {object}  dto.ChartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/charts/income [get]
func (h *ChartsHandler) Income(c *fiber.Ctx) error {
	return serve(h, c, h.uc.Income)
}

// Channels godoc
// @Summary      Ventas online por canal
// @Description  Las ventas sin canal se agrupan en "Unknown". view=percent devuelve el porcentaje
//               de cada canal dentro del bucket.
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "week (default) | month"
// @Param        view  query  string  false  "count (default) | percent"
// @Success      200  {object}  dto.GroupChartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/charts/channels [get]
func (h *ChartsHandler) Channels(c *fiber.Ctx) error {
	return serve(h, c, h.uc.Channels)
}

// Categories godoc
// @Summary      Unidades vendidas por categoría
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "week (default) | month"
// @Param        view  query  string  false  "count (default) | percent"
// @Success      200  {object}  dto.GroupChartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/charts/categories [get]
func (h *ChartsHandler) Categories(c *fiber.Ctx) error {
	return serve(h, c, h.uc.Categories)
}

// Summary godoc
// @Summary      Totales de la ventana activa
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "week (default) | month"
// @Success      200  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/charts/summary [get]
func (h *ChartsHandler) Summary(c *fiber.Ctx) error {
	return serve(h, c, h.uc.Summary)
}

// SaleCosting godoc
// @Summary      Desglose del costo de una venta
// @Description  Recibe una venta del back-office (store, online o advance) y devuelve sus
//               variantes, lotes y el costo resuelto según su estado.
// @Tags         costing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleCostingRequest  true  "Tipo de venta y registro"
// @Success      200  {object}  dto.SaleCostingDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/costing/sale [post]
func (h *ChartsHandler) SaleCosting(c *fiber.Ctx) error {
	var req dto.SaleCostingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "cuerpo JSON inválido",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "kind debe ser store|online|advance y record es requerido",
		})
	}
	out, err := h.uc.SaleCosting(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
