package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/application/validation"
	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/pkg/logger"
)

const msgValidation = "Validation failed"

// writeError traduce errores de dominio a respuestas HTTP. resource nombra la entidad
// en los mensajes 404/409. Los errores no clasificados se registran y devuelven 500
// sin exponer el detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, resource string, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msgValidation, Fields: verr.Fields})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msgValidation})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: resource + " not found"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "Email already registered"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: resource + " already exists"})
	case errors.Is(err, domain.ErrUnauthorized):
		return unauthorized(c, "Incorrect email or password")
	}

	requestLogger(c, log).Error().Err(err).
		Str("method", c.Method()).
		Str("route", c.Route().Path).
		Str("resource", resource).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Internal server error"})
}

// parseID lee el parámetro :id como entero.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, validation.FieldFailed("id", "int")
	}
	return id, nil
}

// parseBody decodifica el cuerpo; un cuerpo ilegible se reporta como error de validación.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return validation.FieldFailed("body", "parse")
	}
	return nil
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, métodos no permitidos y panics recuperados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			code := "HTTP_ERROR"
			switch ferr.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			}
			return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: code, Message: ferr.Message})
		}
		return writeError(c, log, "resource", err)
	}
}
