package controller

import (
	"codebenders/internal/dto"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IWorkspaceController serves the wizard's feature endpoints under /api.
type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	UploadPRD(ctx *fiber.Ctx) error
	GetPersonas(ctx *fiber.Ctx) error
	UploadPersonas(ctx *fiber.Ctx) error
	GetBrandDesign(ctx *fiber.Ctx) error
	UploadBrandDesign(ctx *fiber.Ctx) error
	GetThirdParty(ctx *fiber.Ctx) error
	UploadThirdParty(ctx *fiber.Ctx) error
	UploadProviders(ctx *fiber.Ctx) error
	GeneratePreview(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service service.IWorkspaceService
}

func NewWorkspaceController(service service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{service: service}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/upload_prd", auth, c.UploadPRD)
	r.Get("/get_userpersonas", auth, c.GetPersonas)
	r.Post("/upload_userpersonas", auth, c.UploadPersonas)
	r.Get("/get_branddesign", auth, c.GetBrandDesign)
	r.Post("/upload_branddesign", auth, c.UploadBrandDesign)
	r.Get("/get_thirdparty", auth, c.GetThirdParty)
	r.Post("/upload_thirdparty", auth, c.UploadThirdParty)
	r.Post("/upload_thirdparty_providers", auth, c.UploadProviders)
	r.Post("/generate_preview", auth, c.GeneratePreview)
}

func (c *workspaceController) UploadPRD(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.PRDUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	// an empty text gets a readable 400 from the service, not a 422
	res, err := c.service.UploadPRD(ctx.UserContext(), userId, &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *workspaceController) GetPersonas(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var scope dto.Scope
	if err := serverutils.BindQuery(ctx, &scope); err != nil {
		return err
	}

	res, err := c.service.Personas(ctx.UserContext(), userId, scope)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *workspaceController) UploadPersonas(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.PersonaUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	res, err := c.service.UploadPersonas(ctx.UserContext(), userId, &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *workspaceController) GetBrandDesign(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var scope dto.Scope
	if err := serverutils.BindQuery(ctx, &scope); err != nil {
		return err
	}

	brand, err := c.service.BrandDesign(ctx.UserContext(), userId, scope)
	if err != nil {
		return fail(ctx, err, "")
	}
	if brand == nil {
		return ctx.JSON(fiber.Map{})
	}
	return ctx.JSON(brand)
}

func (c *workspaceController) UploadBrandDesign(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.BrandDesignUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	res, err := c.service.UploadBrandDesign(ctx.UserContext(), userId, &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *workspaceController) GetThirdParty(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var scope dto.Scope
	if err := serverutils.BindQuery(ctx, &scope); err != nil {
		return err
	}

	catalog, err := c.service.ThirdParty(ctx.UserContext(), userId, scope)
	if err != nil {
		return fail(ctx, err, "")
	}
	if catalog == nil {
		return ctx.JSON(fiber.Map{})
	}
	return ctx.JSON(catalog)
}

func (c *workspaceController) UploadThirdParty(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.ThirdPartyUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	res, err := c.service.UploadThirdParty(ctx.UserContext(), userId, &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *workspaceController) UploadProviders(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.ProviderUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	res, err := c.service.UploadProviders(ctx.UserContext(), userId, &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *workspaceController) GeneratePreview(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.PreviewRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.GeneratePreview(ctx.UserContext(), userId, &req)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}
