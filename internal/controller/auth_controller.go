package controller

import (
	"errors"

	"codebenders/internal/dto"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	ForgotPassword(ctx *fiber.Ctx) error
	ResetPassword(ctx *fiber.Ctx) error
	RequestVerifyToken(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", auth, c.Logout)
	h.Post("/forgot-password", c.ForgotPassword)
	h.Post("/reset-password", c.ResetPassword)
	h.Post("/request-verify-token", c.RequestVerifyToken)
	h.Post("/verify", c.Verify)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}

	user, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return fail(ctx, err, dto.DetailRegisterInvalidPassword)
	}
	return ctx.Status(fiber.StatusCreated).JSON(user)
}

// Login reads the OAuth2 password form: the email travels as "username".
func (c *authController) Login(ctx *fiber.Ctx) error {
	var form dto.LoginForm
	if err := serverutils.Bind(ctx, &form); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &form)
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(res)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.UserContext(), serverutils.CurrentClaims(ctx)); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *authController) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}
	if err := c.service.ForgotPassword(ctx.UserContext(), req.Email); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(nil)
}

func (c *authController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}

	err := c.service.ResetPassword(ctx.UserContext(), &req)
	if errors.Is(err, service.ErrBadToken) {
		return serverutils.Detail(ctx, fiber.StatusBadRequest, dto.DetailResetPasswordBadToken)
	}
	if err != nil {
		return fail(ctx, err, dto.DetailResetPasswordInvalidPassword)
	}
	return ctx.JSON(nil)
}

func (c *authController) RequestVerifyToken(ctx *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}
	if err := c.service.RequestVerifyToken(ctx.UserContext(), req.Email); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(nil)
}

func (c *authController) Verify(ctx *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := serverutils.Bind(ctx, &req); err != nil {
		return err
	}

	user, err := c.service.Verify(ctx.UserContext(), req.Token)
	if errors.Is(err, service.ErrBadToken) {
		return serverutils.Detail(ctx, fiber.StatusBadRequest, dto.DetailVerifyUserBadToken)
	}
	if err != nil {
		return fail(ctx, err, "")
	}
	return ctx.JSON(user)
}
