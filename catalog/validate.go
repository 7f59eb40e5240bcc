package catalog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotBlank rejects strings that are empty after trimming whitespace.
// validation.Required alone accepts "   ", which the catalog API must not.
var NotBlank = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_is_blank", "must not be blank")
	}
	return nil
})
