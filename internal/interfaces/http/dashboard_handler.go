package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// DashboardHandler maneja el endpoint del dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Resumen financiero de un período
// @Description  Totales, beneficio neto, reparto por canal y por categoría y las 5 últimas ventas y gastos.
// @Description  period vacío = today. start/end tienen prioridad sobre period.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today | week | month | all"
// @Param        start   query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        end     query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	var q dto.DashboardQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Get(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
