package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caisse-api/internal/application/usecase"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// CategoryHandler catálogo de categorías de gasto.
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Categorías de gasto
// @Description  Categorías ya usadas (de más a menos usada) seguidas de las sugeridas sin uso.
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/expenses/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
