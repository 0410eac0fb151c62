package controller

import (
	"context"
	"errors"

	"codebenders/internal/dto"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)

	Me(ctx *fiber.Ctx) error
	UpdateMe(ctx *fiber.Ctx) error
	DeleteMe(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error

	ListUsers(ctx *fiber.Ctx) error
	GetUser(ctx *fiber.Ctx) error
	UpdateUser(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	VerifyUser(ctx *fiber.Ctx) error
	BanUser(ctx *fiber.Ctx) error
	UnbanUser(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	me := r.Group("/auth/me", auth)
	me.Get("/", c.Me)
	me.Patch("/", c.UpdateMe)
	me.Delete("/", c.DeleteMe)
	me.Post("/change-password", c.ChangePassword)

	admin := r.Group("/auth/users", auth, serverutils.AdminOnly)
	admin.Get("/", c.ListUsers)
	admin.Get("/:id", c.GetUser)
	admin.Patch("/:id", c.UpdateUser)
	admin.Delete("/:id", c.DeleteUser)
	admin.Post("/:id/verify", c.VerifyUser)
	admin.Post("/:id/ban", c.BanUser)
	admin.Post("/:id/unban", c.UnbanUser)
}

// failSelf treats a vanished account like a bad token.
func failSelf(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrUserNotFound) {
		return serverutils.Detail(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	return fail(ctx, err, dto.DetailUpdateUserInvalidPassword)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	user, err := c.service.Me(ctx.UserContext(), userId)
	if err != nil {
		return failSelf(ctx, err)
	}
	return ctx.JSON(user)
}

func (c *userController) UpdateMe(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.UserUpdate
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}
	user, err := c.service.UpdateMe(ctx.UserContext(), userId, &req)
	if err != nil {
		return failSelf(ctx, err)
	}
	return ctx.JSON(user)
}

func (c *userController) DeleteMe(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	if err := c.service.DeleteMe(ctx.UserContext(), userId); err != nil {
		return failSelf(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *userController) ChangePassword(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}
	if err := c.service.ChangePassword(ctx.UserContext(), userId, &req); err != nil {
		return failSelf(ctx, err)
	}
	return ctx.JSON(dto.MessageResponse{Message: "Password updated successfully"})
}

func (c *userController) ListUsers(ctx *fiber.Ctx) error {
	var query dto.UserListQuery
	if err := serverutils.BindQuery(ctx, &query); err != nil {
		return err
	}
	res, err := c.service.ListUsers(ctx.UserContext(), query)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *userController) GetUser(ctx *fiber.Ctx) error {
	user, err := c.service.GetUser(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(user)
}

func (c *userController) UpdateUser(ctx *fiber.Ctx) error {
	var req dto.UserUpdate
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}
	user, err := c.service.UpdateUser(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return fail(ctx, err, dto.DetailUpdateUserInvalidPassword)
	}
	return ctx.JSON(user)
}

func (c *userController) DeleteUser(ctx *fiber.Ctx) error {
	if err := c.service.DeleteUser(ctx.UserContext(), ctx.Params("id")); err != nil {
		return fail(ctx, err, "")
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *userController) VerifyUser(ctx *fiber.Ctx) error {
	return c.userAction(ctx, c.service.VerifyUser)
}

func (c *userController) BanUser(ctx *fiber.Ctx) error {
	return c.userAction(ctx, c.service.BanUser)
}

func (c *userController) UnbanUser(ctx *fiber.Ctx) error {
	return c.userAction(ctx, c.service.UnbanUser)
}

func (c *userController) userAction(ctx *fiber.Ctx, action func(ctx context.Context, userId string) (*dto.User, error)) error {
	user, err := action(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(user)
}
