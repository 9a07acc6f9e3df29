package scenario

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	scenarioNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
)

// validatorInstance configures and returns the shared validator instance
// used across the scenario package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("scenario_name", func(fl validator.FieldLevel) bool {
			return scenarioNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// GetValidator returns the configured validator instance for use outside
// the scenario package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
