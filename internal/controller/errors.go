package controller

import (
	"errors"

	"codebenders/internal/dto"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/service"

	"github.com/gofiber/fiber/v2"
)

type errorMapping struct {
	err    error
	status int
	detail interface{}
}

var errorMappings = []errorMapping{
	{service.ErrUserAlreadyExists, fiber.StatusBadRequest, dto.DetailRegisterUserAlreadyExists},
	{service.ErrBadCredentials, fiber.StatusBadRequest, dto.DetailLoginBadCredentials},
	{service.ErrAlreadyVerified, fiber.StatusBadRequest, dto.DetailVerifyUserAlreadyVerified},
	{service.ErrEmailAlreadyExists, fiber.StatusBadRequest, dto.DetailUpdateUserEmailAlreadyExists},
	{service.ErrWrongPassword, fiber.StatusBadRequest, dto.ErrorDetail{Code: dto.DetailUpdateUserInvalidPassword, Reason: "Current password is incorrect"}},
	{service.ErrUserNotFound, fiber.StatusNotFound, "Not Found"},
	{service.ErrInvalidPagination, fiber.StatusUnprocessableEntity, "page must be at least 1 and size between 1 and 100"},

	{service.ErrProjectNotFound, fiber.StatusNotFound, "Project not found"},
	{service.ErrInvalidProjectName, fiber.StatusUnprocessableEntity, "name: field required"},

	{service.ErrEmptyPRD, fiber.StatusBadRequest, "PRD text cannot be empty"},
	{service.ErrNoPersonas, fiber.StatusBadRequest, "At least one persona must be selected"},
	{service.ErrBrandNameRequired, fiber.StatusBadRequest, "Brand name is required"},
	{service.ErrBrandColors, fiber.StatusBadRequest, "Brand colors are required"},
	{service.ErrNoAPIs, fiber.StatusBadRequest, "At least one API must be selected"},
	{service.ErrNoProviders, fiber.StatusBadRequest, "At least one provider must be selected"},
	{service.ErrPreviewFailed, fiber.StatusBadGateway, "Preview generation failed"},
}

// fail renders a service error as {"detail": ...}. Password policy errors
// carry passwordCode. Anything unmapped goes to the app error handler.
func fail(ctx *fiber.Ctx, err error, passwordCode string) error {
	var pe *service.PasswordError
	if errors.As(err, &pe) {
		return serverutils.Detail(ctx, fiber.StatusBadRequest, dto.ErrorDetail{Code: passwordCode, Reason: pe.Reason})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return serverutils.Detail(ctx, m.status, m.detail)
		}
	}
	return err
}
