package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/usecase"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// ExpenseHandler maneja las peticiones HTTP de dépenses.
type ExpenseHandler struct {
	uc  *usecase.ExpenseUseCase
	log *logger.Logger
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase, log *logger.Logger) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar un gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "Gasto (date vacío = hoy, payment_method vacío = card)"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener gasto por ID
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar gastos
// @Description  Sin filtros devuelve todos. period admite today, week, month, all; start/end (YYYY-MM-DD) definen un rango explícito.
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        date     query  string  false  "Fecha exacta (YYYY-MM-DD)"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        urgent    query  bool    false  "Solo urgentes (true) o no urgentes (false)"
// @Param        period   query  string  false  "today | week | month | all"
// @Param        start    query  string  false  "Inicio del rango"
// @Param        end      query  string  false  "Fin del rango"
// @Success      200  {array}   dto.ExpenseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var q dto.ExpenseListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar un gasto
// @Description  Actualización completa: todos los campos se sustituyen.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del gasto"
// @Param        body  body  dto.ExpenseRequest  true  "Gasto completo"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un gasto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del gasto"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DeleteResponse{Success: true, Message: "gasto eliminado", Data: out})
}
