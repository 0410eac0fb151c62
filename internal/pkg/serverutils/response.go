package serverutils

import (
	"errors"

	"codebenders/internal/dto"
	"codebenders/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Detail writes a {"detail": ...} error body. detail is a string or a
// dto.ErrorDetail.
func Detail(ctx *fiber.Ctx, status int, detail interface{}) error {
	return ctx.Status(status).JSON(dto.ErrorResponse{Detail: detail})
}

// ErrorHandler renders errors that reach fiber in the same shape.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Detail(ctx, fe.Code, fe.Message)
		}

		log.Error("http", "Unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return Detail(ctx, fiber.StatusInternalServerError, "Internal Server Error")
	}
}
