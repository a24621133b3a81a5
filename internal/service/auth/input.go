package auth

import (
	"strings"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// bcrypt rejects inputs longer than 72 bytes.
const maxPasswordLength = 72

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if err := validateEmail(i.Email); err != nil {
		errs = append(errs, *err)
	}

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	} else if len(i.Password) > maxPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if err := validateEmail(i.Email); err != nil {
		errs = append(errs, *err)
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEmail(email string) *domain.FieldError {
	switch {
	case email == "":
		return &domain.FieldError{Field: "email", Message: "required"}
	case len(email) > 254:
		return &domain.FieldError{Field: "email", Message: "too long"}
	case !strings.Contains(email, "@"):
		return &domain.FieldError{Field: "email", Message: "invalid format"}
	}
	return nil
}
