package services

import (
	"context"
	"errors"
	"fmt"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidDistance = errors.New("estimated distance must be a positive number")

// Quote is the price breakdown for a prospective booking. TotalAmount always
// equals DistanceCharge + DriverCharge.
type Quote struct {
	DistanceCharge float64 `json:"distance_charge"`
	DriverCharge   float64 `json:"driver_charge"`
	TotalAmount    float64 `json:"total_amount"`
}

// ComputeQuote derives the booking charges. The driver surcharge is a flat
// amount and applies only to chauffeured bookings with a driver picked.
func ComputeQuote(pricePerKm, estimatedDistance float64, bookingType models.BookingType, driverSelected bool) (*Quote, error) {
	if estimatedDistance <= 0 {
		return nil, ErrInvalidDistance
	}

	distanceCharge := pricePerKm * estimatedDistance

	var driverCharge float64
	if bookingType == models.BookingTypeWithDriver && driverSelected {
		driverCharge = utils.DriverCharge
	}

	return &Quote{
		DistanceCharge: distanceCharge,
		DriverCharge:   driverCharge,
		TotalAmount:    distanceCharge + driverCharge,
	}, nil
}

// PricingService quotes bookings against the stored vehicle rate, optionally
// estimating the distance from the pickup and drop addresses.
type PricingService interface {
	QuoteBooking(ctx context.Context, request *QuoteRequest) (*QuoteResponse, error)
}

type QuoteRequest struct {
	CarID             primitive.ObjectID `json:"car_id"`
	EstimatedDistance float64            `json:"estimated_distance"`
	BookingType       models.BookingType `json:"booking_type"`
	DriverSelected    bool               `json:"driver_selected"`
	PickupLocation    string             `json:"pickup_location"`
	DropLocation      string             `json:"drop_location"`
}

type QuoteResponse struct {
	Quote
	PricePerKm        float64 `json:"price_per_km"`
	EstimatedDistance float64 `json:"estimated_distance"`
	DistanceEstimated bool    `json:"distance_estimated"`
}

type pricingService struct {
	vehicleRepo interfaces.VehicleRepository
	estimator   maps.DistanceEstimator
}

func NewPricingService(vehicleRepo interfaces.VehicleRepository, estimator maps.DistanceEstimator) PricingService {
	return &pricingService{
		vehicleRepo: vehicleRepo,
		estimator:   estimator,
	}
}

func (s *pricingService) QuoteBooking(ctx context.Context, request *QuoteRequest) (*QuoteResponse, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, request.CarID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle for quote: %w", err)
	}

	distance := request.EstimatedDistance
	estimated := false

	// Distance lookup is best effort; the client-entered value wins when the
	// estimator is absent or cannot resolve a route.
	if distance <= 0 && s.estimator != nil && request.PickupLocation != "" && request.DropLocation != "" {
		if est, err := s.estimator.EstimateDistance(ctx, request.PickupLocation, request.DropLocation); err == nil {
			distance = est.DistanceKm
			estimated = true
		}
	}

	quote, err := ComputeQuote(vehicle.PricePerKm, distance, request.BookingType, request.DriverSelected)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		Quote:             *quote,
		PricePerKm:        vehicle.PricePerKm,
		EstimatedDistance: distance,
		DistanceEstimated: estimated,
	}, nil
}
