package utils

import "time"

// Application constants
const (
	AppName    = "GoRent"
	AppVersion = "1.0.0"

	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Booking constants
	DriverCharge        = 50.0 // flat surcharge for chauffeured bookings
	CancellationCutoff  = 2 * time.Hour
	MaxBookingDistance  = 2000.0 // kilometers
	PickupDateLayout    = "2006-01-02"
	PickupTimeLayout    = "15:04"
	BookingNumberPrefix = "BK"

	// Catalog price-range thresholds (per km)
	PriceRangeLowMax    = 1.0
	PriceRangeMediumMax = 2.0

	// Cache TTLs
	VehicleCacheTTL = 15 * time.Minute
	RoleCacheTTL    = 5 * time.Minute

	// File upload
	MaxImageSize = 5 * 1024 * 1024 // 5MB
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common error messages
const (
	ErrValidationFailed   = "Validation failed"
	ErrInternalServer     = "Internal server error"
	ErrUnauthorized       = "Authentication required"
	ErrForbidden          = "Access denied"
	ErrInvalidCredentials = "Invalid email or password"
	ErrDuplicateAccount   = "An account with this email already exists"
)
