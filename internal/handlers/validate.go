package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks submitted forms. Field errors are keyed by the form
// field name taken from the `form` struct tag.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// contactForm is the contact page submission.
type contactForm struct {
	Name    string `form:"name" validate:"required,max=120"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"max=30"`
	Message string `form:"message" validate:"required,max=5000"`
}

// registrationForm is the home page registration submission.
type registrationForm struct {
	Name    string `form:"name" validate:"required,max=120"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"required,max=30"`
	Company string `form:"company" validate:"max=120"`
	Country string `form:"country" validate:"max=100"`
	Message string `form:"message" validate:"max=5000"`
}

// checkoutForm carries the customer details entered at checkout.
type checkoutForm struct {
	Name    string `form:"name" validate:"required,max=120"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"max=40"`
	Address string `form:"address" validate:"required,max=1000"`
}

// fieldError is one failed rule on a form field.
type fieldError struct {
	Field   string
	Message string
}

// formErrors lists field errors in struct field order.
type formErrors []fieldError

// Map indexes the errors by field, keeping the first message per field.
func (fe formErrors) Map() map[string]string {
	m := make(map[string]string, len(fe))
	for _, e := range fe {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// validateForm runs the struct rules on form and returns user-facing
// messages, or nil when the form is valid.
func validateForm(form any) formErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		slog.Error("validate form", "error", err)
		return formErrors{{Field: "", Message: "The form could not be checked."}}
	}

	out := make(formErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// message turns a failed rule into a sentence for the visitor.
func message(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters).", label, fe.Param())
	default:
		return label + " is invalid."
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return "Field"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// formValue returns the trimmed value of a posted field.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
