package validators

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmailWellFormed checks syntax only; it never resolves the domain.
func IsEmailWellFormed(email string) bool {
	return validate.Var(email, "required,email,max=100") == nil
}
