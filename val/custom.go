package val

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagNotBlank rejects strings made only of whitespace.
const TagNotBlank = "not_blank"

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
