package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gela-api/pkg/logger"
)

const (
	localRequestID = "requestid" // clave por defecto del middleware requestid de Fiber
	localLogger    = "logger"
)

// RequestLogger registra cada petición (método, ruta, status, latencia, request id) y
// alimenta las métricas. Deja en Locals un logger con el request_id para los handlers.
func RequestLogger(log *logger.Logger, m *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log
		if id, ok := c.Locals(localRequestID).(string); ok && id != "" {
			reqLog = log.WithRequestID(id)
		}
		c.Locals(localLogger, reqLog)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path
		m.observeRequest(c.Method(), route, status, elapsed)

		evt := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			evt = reqLog.Error()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
		return nil
	}
}

// requestLogger devuelve el logger de la petición o fallback si no hay middleware.
func requestLogger(c *fiber.Ctx, fallback *logger.Logger) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return fallback
}
