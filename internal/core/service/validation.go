package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/core/ports"
)

// Validator checks caller input before it reaches the services. The services
// themselves store what they are given.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

type registration struct {
	ports.RegisterInput
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Registration checks a sign up form, including the role specific fields.
func (val *Validator) Registration(in ports.RegisterInput, password string) error {
	return val.check(registration{RegisterInput: in, Password: password})
}

func (val *Validator) Listing(in ports.NewListingInput) error {
	return val.check(in)
}

func (val *Validator) ContactMessage(in ports.NewContactMessageInput) error {
	return val.check(in)
}

// Comment rejects blank comment content.
func (val *Validator) Comment(content string) error {
	if err := val.v.Var(strings.TrimSpace(content), "required"); err != nil {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return nil
}

func (val *Validator) check(i any) error {
	err := val.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, strings.Replace(strings.ToLower(fe.Param()), " ", " is ", 1))
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
