package entity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"blog-api/internal/utils/text"
)

// User is an author identity. Credentials are handled by the auth service;
// PasswordHash is never rendered.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Registration holds sign-up input before it becomes a User.
type Registration struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Normalize trims surrounding whitespace and lower-cases the email.
func (r Registration) Normalize() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

// Validate checks sign-up input and returns every violation at once.
func (r Registration) Validate(minPasswordLength int) error {
	var errs ValidationErrors

	errs = appendPresence(errs, "name", r.Name)
	if r.Email == "" {
		errs = append(errs, &ValidationError{Field: "email", Message: "can't be blank"})
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, &ValidationError{Field: "email", Message: "is not an email"})
	}

	if r.Password == "" {
		errs = append(errs, &ValidationError{Field: "password", Message: "can't be blank"})
	} else if text.CountRunes(r.Password) < minPasswordLength {
		errs = append(errs, &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("is too short (minimum is %d characters)", minPasswordLength),
		})
	}
	if r.Password != r.PasswordConfirmation {
		errs = append(errs, &ValidationError{Field: "password_confirmation", Message: "doesn't match Password"})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
