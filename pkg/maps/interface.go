package maps

import "context"

// DistanceEstimator resolves a driving distance between two addresses.
// Wiring is optional: without an API key the quote endpoint falls back to the
// customer-entered distance.
type DistanceEstimator interface {
	EstimateDistance(ctx context.Context, origin, destination string) (*DistanceEstimate, error)
}

type DistanceEstimate struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
}
