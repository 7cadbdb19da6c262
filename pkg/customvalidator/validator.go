package customvalidator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations wires the project-specific rules into the shared
// validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("e164_phone", isE164PhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("dateonly", isDateOnly); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

func isE164PhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^\+[1-9]\d{6,14}$`)
	return re.MatchString(fl.Field().String())
}

// dateonly accepts the canonical YYYY-MM-DD form used for document expiries.
func isDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
