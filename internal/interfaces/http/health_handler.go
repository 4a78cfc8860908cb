package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/pkg/logger"
)

const healthTimeout = 2 * time.Second

// Pinger verifica la conexión con el almacén (implementado por *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler raíz y health check.
type HealthHandler struct {
	service string
	db      Pinger // nil con el driver en memoria
	log     *logger.Logger
}

func NewHealthHandler(service string, db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{service: service, db: db, log: log}
}

// Root godoc
// @Summary  Mensaje de bienvenida
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.MessageResponse
// @Router   / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "¡Bienvenido a la Gela API!"})
}

// Health godoc
// @Summary  Estado del servicio
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.HealthResponse
// @Failure  503  {object}  dto.HealthResponse
// @Router   /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			requestLogger(c, h.log).Error().Err(err).Msg("health: base de datos no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable", Service: h.service})
		}
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Service: h.service})
}
