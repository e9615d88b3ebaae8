package validators

import (
	"strings"

	"gorent/internal/utils"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, ve := range e {
		messages = append(messages, ve.Field+": "+ve.Message)
	}
	return strings.Join(messages, "; ")
}

// ToDetails converts the errors to the field -> message map used by the
// error response envelope.
func (e ValidationErrors) ToDetails() map[string]string {
	details := make(map[string]string, len(e))
	for _, ve := range e {
		details[ve.Field] = ve.Message
	}
	return details
}

// ValidateStruct runs tag validation and flattens the result.
func ValidateStruct(s interface{}) ValidationErrors {
	err := utils.ValidateStruct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Message: "failed on '" + fe.Tag() + "' validation",
			})
		}
		return errors
	}

	return ValidationErrors{{Field: "request", Message: err.Error()}}
}
