package utils

import (
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("phone", validatePhone)
	validate.RegisterValidation("pickup_date", validatePickupDate)
	validate.RegisterValidation("pickup_time", validatePickupTime)
	validate.RegisterValidation("strong_password", validateStrongPassword)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationDetails flattens validator errors into a field -> message map for
// the error response envelope.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details[fe.Field()] = "failed on '" + fe.Tag() + "' validation"
		}
	}
	return details
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true
	}
	return phoneRegex.MatchString(phone)
}

func validatePickupDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(PickupDateLayout, fl.Field().String())
	return err == nil
}

func validatePickupTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(PickupTimeLayout, fl.Field().String())
	return err == nil
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
