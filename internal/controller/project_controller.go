package controller

import (
	"codebenders/internal/dto"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProjectController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type projectController struct {
	service service.IProjectService
}

func NewProjectController(service service.IProjectService) IProjectController {
	return &projectController{service: service}
}

func (c *projectController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/projects", auth)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id", c.Get)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/stats", c.Stats)
}

func (c *projectController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var query dto.ProjectListQuery
	if err := serverutils.BindQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), userId, query)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *projectController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.CreateProjectRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}

	project, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.Status(fiber.StatusCreated).JSON(project)
}

func (c *projectController) Get(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	project, err := c.service.Get(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(project)
}

func (c *projectController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateProjectRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}

	project, err := c.service.Update(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(project)
}

func (c *projectController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.UserContext(), userId, ctx.Params("id")); err != nil {
		return fail(ctx, err, "")
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *projectController) Stats(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	stats, err := c.service.Stats(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(stats)
}
