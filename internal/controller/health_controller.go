package controller

import (
	"codebenders/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const (
	serviceName    = "codebenders-api"
	serviceVersion = "1.0.0"
)

type IHealthController interface {
	RegisterRoutes(app *fiber.App)
}

type healthController struct{}

func NewHealthController() IHealthController {
	return &healthController{}
}

func (c *healthController) RegisterRoutes(app *fiber.App) {
	app.Get("/", c.Root)
	app.Get("/api/v1/health", c.Health)
	app.Get("/api/v1/auth/health", c.Health)
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"message": "CodeBenders API is running",
		"version": serviceVersion,
	})
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Status: "healthy", Service: serviceName})
}
