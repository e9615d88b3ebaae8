package validators

import (
	"time"

	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"
)

// ValidateCreateBooking layers cross-field rules on top of tag validation:
// chauffeured bookings need a driver, pickup must be in the future, and the
// distance must be plausible.
func ValidateCreateBooking(req *services.CreateBookingRequest, now time.Time) ValidationErrors {
	errors := ValidateStruct(req)
	if errors.HasErrors() {
		return errors
	}

	if models.BookingType(req.BookingType) == models.BookingTypeWithDriver && req.DriverID == "" {
		errors = append(errors, ValidationError{
			Field:   "driver_id",
			Message: "a driver must be selected for chauffeur bookings",
		})
	}

	pickup, err := time.ParseInLocation(
		utils.PickupDateLayout+" "+utils.PickupTimeLayout,
		req.PickupDate+" "+req.PickupTime, now.Location())
	if err != nil {
		errors = append(errors, ValidationError{
			Field:   "pickup_date",
			Message: "invalid pickup date or time",
		})
	} else if !pickup.After(now) {
		errors = append(errors, ValidationError{
			Field:   "pickup_date",
			Message: "pickup must be in the future",
		})
	}

	if req.EstimatedDistance > utils.MaxBookingDistance {
		errors = append(errors, ValidationError{
			Field:   "estimated_distance",
			Message: "distance exceeds the maximum bookable trip length",
		})
	}

	return errors
}

// ValidateReview checks the rating bounds for customer and driver reviews.
func ValidateReview(review *models.Review) ValidationErrors {
	errors := ValidateStruct(review)
	if errors.HasErrors() {
		return errors
	}

	if review.Rating < 1 || review.Rating > 5 {
		errors = append(errors, ValidationError{
			Field:   "rating",
			Message: "rating must be between 1 and 5",
		})
	}

	return errors
}
