package validators

import (
	"strings"

	"gorent/internal/services"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func ValidateVehicleRequest(req *services.VehicleRequest) ValidationErrors {
	errors := ValidateStruct(req)
	if errors.HasErrors() {
		return errors
	}

	for _, feature := range req.Features {
		if strings.TrimSpace(feature) == "" {
			errors = append(errors, ValidationError{
				Field:   "features",
				Message: "features must not contain empty entries",
			})
			break
		}
	}

	return errors
}

func ValidateImageContentType(contentType string) ValidationErrors {
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return ValidationErrors{{
			Field:   "image",
			Message: "image must be JPEG, PNG, or WebP",
		}}
	}
	return nil
}
