package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// registerCustomRules adds domain-specific validation tags.
func registerCustomRules(v *validator.Validate) error {
	// "yyyymm": training slot months are addressed as "2026-09".
	if err := v.RegisterValidation("yyyymm", func(fl validator.FieldLevel) bool {
		return monthPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return nil
}
