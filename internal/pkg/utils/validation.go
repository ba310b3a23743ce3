package utils

import (
	"regexp"
	"telecare-service/internal/pkg/exceptions"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3])[:.][0-5]\d$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock", validateClock)
}

func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func validateClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}
