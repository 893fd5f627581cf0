package enum

import (
	"github.com/go-playground/validator/v10"
)

// validatable is satisfied by every enum in this package.
type validatable interface {
	IsValid() bool
}

// ValidateEnum backs the `enum` validation tag: any field whose type
// implements IsValid can be checked through it.
func ValidateEnum(fl validator.FieldLevel) bool {
	if v, ok := fl.Field().Interface().(validatable); ok {
		return v.IsValid()
	}
	return false
}
