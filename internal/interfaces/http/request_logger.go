package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/posbuzz/pos-api/pkg/logger"
)

// RequestLogger registra cada petición que termina en error (status >= 400)
// con campos estructurados: método, ruta, status y latencia.
// Las respuestas exitosas se registran a nivel debug.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		ev := log.Debug()
		if err != nil || status >= 400 {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición")
		return err
	}
}
