package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const minPhoneDigits = 10

// NewValidator returns a validator that reports JSON field names and knows the
// "phone" tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("phone", validatePhone)
	return v
}

// validatePhone accepts digits plus common separators and needs at least ten digits.
func validatePhone(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}
