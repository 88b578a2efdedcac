package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/usecase"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// writeError traduce un error de aplicación a status y ErrorResponse. Los 5xx se registran con
// el error completo; el cliente solo recibe un código y un mensaje genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	}

	resp := dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		resp = dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "base de datos no disponible"}
	case errors.Is(err, domain.ErrDeliveryFailed):
		resp = dto.ErrorResponse{Code: "DELIVERY_FAILED", Message: "no se pudo enviar el reporte"}
	case errors.Is(err, domain.ErrPersistenceFailed):
		resp = dto.ErrorResponse{Code: "PERSISTENCE_FAILED", Message: "reporte enviado pero no registrado"}
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("code", resp.Code).
		Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

// pathID lee y valida el parámetro :id. Responde 400 INVALID_ID si no es un entero positivo.
func pathID(c *fiber.Ctx) (int64, bool, error) {
	id, err := usecase.ParseID(c.Params("id"))
	if err != nil {
		return 0, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_ID", Message: "id debe ser un entero positivo",
		})
	}
	return id, true, nil
}
