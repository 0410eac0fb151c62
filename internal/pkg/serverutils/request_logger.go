package serverutils

import (
	"time"

	"codebenders/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		details := map[string]interface{}{
			"method":      ctx.Method(),
			"path":        ctx.Path(),
			"status":      ctx.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if uid, ok := ctx.Locals(localUserID).(string); ok {
			details["user_id"] = uid
		}
		log.Info("http", "Request handled", details)
		return err
	}
}
