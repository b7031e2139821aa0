// Package login implements the admin sign-in form: validation, the
// registration call and handing the returned credentials to the session store.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/nav"
	"github.com/WizCoderr/admin.ajastra/internal/session"
)

// Messages shown for an invalid form, in the order they are checked
const (
	MsgRequired     = "All fields are required"
	MsgInvalidEmail = "Please enter a valid email address"
	MsgInvalidPhone = "Please enter a valid phone number"
)

// ErrInvalidForm is matched by every *FormError
var ErrInvalidForm = errors.New("invalid login form")

// Form is the admin registration form
type Form struct {
	FullName    string `validate:"required"`
	PhoneNumber string `validate:"required,min=10"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required"`
}

// Trimmed returns the form with surrounding whitespace removed from every
// field except the password
func (f Form) Trimmed() Form {
	return Form{
		FullName:    strings.TrimSpace(f.FullName),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
		Email:       strings.TrimSpace(f.Email),
		Password:    f.Password,
	}
}

// FormError describes the first problem found in a form
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

func (e *FormError) Is(target error) bool {
	return target == ErrInvalidForm
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the form. Missing fields are reported before a bad email,
// and a bad email before a short phone number.
func Validate(f Form) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	var emailErr, phoneErr *FormError
	for _, fe := range fieldErrs {
		switch {
		case fe.Tag() == "required":
			return &FormError{Field: fe.Field(), Message: MsgRequired}
		case fe.Field() == "Email" && emailErr == nil:
			emailErr = &FormError{Field: fe.Field(), Message: MsgInvalidEmail}
		case fe.Field() == "PhoneNumber" && phoneErr == nil:
			phoneErr = &FormError{Field: fe.Field(), Message: MsgInvalidPhone}
		}
	}
	if emailErr != nil {
		return emailErr
	}
	if phoneErr != nil {
		return phoneErr
	}
	return &FormError{Field: fieldErrs[0].Field(), Message: MsgRequired}
}

// Registrar is the server side of sign-in
type Registrar interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResult, error)
}

// Flow submits the login form and stores the resulting session
type Flow struct {
	api    Registrar
	store  session.Repository
	nav    nav.Navigator
	logger zerolog.Logger
}

// NewFlow creates a login flow
func NewFlow(registrar Registrar, store session.Repository, navigator nav.Navigator, logger zerolog.Logger) *Flow {
	return &Flow{
		api:    registrar,
		store:  store,
		nav:    navigator,
		logger: logger.With().Str("component", "login").Logger(),
	}
}

// Submit validates the form, registers with the server and, on success,
// stores the token and role and navigates to the dashboard. Nothing is
// stored when validation or the server call fails.
func (f *Flow) Submit(ctx context.Context, form Form) (*api.AuthResult, error) {
	form = form.Trimmed()
	if err := Validate(form); err != nil {
		return nil, err
	}

	result, err := f.api.Register(ctx, api.RegisterRequest{
		FullName:    form.FullName,
		PhoneNumber: form.PhoneNumber,
		Email:       form.Email,
		Password:    form.Password,
	})
	if err != nil {
		f.logger.Debug().Err(err).Str("email", form.Email).Msg("Login rejected")
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := f.store.SetToken(result.Token); err != nil {
		return nil, fmt.Errorf("failed to save session token: %w", err)
	}
	if err := f.store.SetRole(result.User.Role); err != nil {
		if rmErr := f.store.RemoveToken(); rmErr != nil {
			f.logger.Warn().Err(rmErr).Msg("Failed to roll back session token")
		}
		return nil, fmt.Errorf("failed to save session role: %w", err)
	}

	f.logger.Info().Str("email", form.Email).Str("role", result.User.Role).Msg("Logged in")
	f.nav.Navigate(nav.PathDashboard)
	return result, nil
}
