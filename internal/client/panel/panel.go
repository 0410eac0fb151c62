// Package panel holds the screen controllers of the client: the auth forms,
// the project dashboard and one controller per wizard step.
//
// Every submit follows the same order: validate locally, make one backend
// call, check the caller's context, persist through appstate, then navigate
// or advance. A cancelled context after the call means the screen is gone and
// nothing is written.
package panel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codebenders/internal/client/apiclient"
	"codebenders/internal/client/appstate"
	"codebenders/internal/client/route"
	"codebenders/internal/client/service"
	"codebenders/internal/pkg/logger"
)

const logModule = "panel"

// ErrInactive is returned when a response arrives after its screen was left.
var ErrInactive = errors.New("screen is no longer active")

// ValidationError is a local form error. It is never sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err was raised before any network call.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Deps is shared by all panels.
type Deps struct {
	State     *appstate.State
	Router    *route.Router
	Auth      service.IAuthService
	Projects  service.IProjectService
	Brand     service.IBrandService
	Workspace service.IWorkspaceService
	Logger    logger.ILogger

	// DemoMode reproduces local synthesis of login and project data when
	// the backend cannot be reached. Off unless explicitly enabled.
	DemoMode bool

	Now func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) log() logger.ILogger {
	if d.Logger != nil {
		return d.Logger
	}
	return logger.NewNopLogger()
}

// live returns ErrInactive once ctx is done.
func live(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInactive, err)
	}
	return nil
}

// Message turns err into the text shown next to the form.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	if apiErr, ok := apiclient.AsError(err); ok {
		if friendly, ok := detailMessages[apiErr.DetailCode()]; ok {
			if apiErr.DetailCode() == apiErr.Message() || apiErr.Message() == "" {
				return friendly
			}
			return apiErr.Message()
		}
		if apiErr.Kind == apiclient.KindResponse {
			if msg := apiErr.Message(); msg != "" {
				return msg
			}
		}
		if apiErr.Kind == apiclient.KindNetwork {
			return "Cannot reach the server. Check your connection and try again."
		}
	}
	if errors.Is(err, ErrInactive) {
		return ""
	}
	return fallback
}
