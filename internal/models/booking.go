package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type BookingType string
type PaymentMethod string
type PaymentStatus string

const (
	BookingStatusAssigned  BookingStatus = "assigned"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"

	BookingTypeWithDriver BookingType = "withDriver"
	BookingTypeSelfDrive  BookingType = "selfDrive"

	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Review is embedded on a booking after completion. Bookings keep at most one
// review per side (customer and driver).
type Review struct {
	Rating    int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Booking struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	BookingNumber     string              `json:"booking_number" bson:"booking_number"`
	CustomerID        primitive.ObjectID  `json:"customer_id" bson:"customer_id"`
	CarID             primitive.ObjectID  `json:"car_id" bson:"car_id"`
	DriverID          *primitive.ObjectID `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	BookingType       BookingType         `json:"booking_type" bson:"booking_type"`
	PickupLocation    string              `json:"pickup_location" bson:"pickup_location"`
	DropLocation      string              `json:"drop_location" bson:"drop_location"`
	PickupDate        string              `json:"pickup_date" bson:"pickup_date"` // 2006-01-02
	PickupTime        string              `json:"pickup_time" bson:"pickup_time"` // 15:04
	EstimatedDistance float64             `json:"estimated_distance" bson:"estimated_distance"`
	DistanceCharge    float64             `json:"distance_charge" bson:"distance_charge"`
	DriverCharge      float64             `json:"driver_charge" bson:"driver_charge"`
	TotalAmount       float64             `json:"total_amount" bson:"total_amount"`
	Status            BookingStatus       `json:"status" bson:"status"`
	PaymentMethod     PaymentMethod       `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	PaymentStatus     PaymentStatus       `json:"payment_status" bson:"payment_status"`
	PaidAt            *time.Time          `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CancelledAt       *time.Time          `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CompletedAt       *time.Time          `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CustomerReview    *Review             `json:"customer_review,omitempty" bson:"customer_review,omitempty"`
	DriverReview      *Review             `json:"driver_review,omitempty" bson:"driver_review,omitempty"`
	CreatedAt         time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" bson:"updated_at"`
}

// PickupDateTime combines the stored pickup date and time fields.
func (b *Booking) PickupDateTime() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", b.PickupDate+" "+b.PickupTime, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pickup date/time %q %q: %w", b.PickupDate, b.PickupTime, err)
	}
	return t, nil
}

// Terminal reports whether the booking status has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusAssigned, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}
