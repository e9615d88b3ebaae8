package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Type        string             `json:"type" bson:"type" validate:"required"`
	PricePerKm  float64            `json:"price_per_km" bson:"price_per_km" validate:"required,gt=0"`
	IsAvailable bool               `json:"is_available" bson:"is_available"`
	Features    []string           `json:"features" bson:"features"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// VehicleFilter selects and orders catalog listings. The zero value ("", "",
// "") behaves like the all/all/default filter.
type VehicleFilter struct {
	Type       string `json:"type" form:"type"`
	PriceRange string `json:"price_range" form:"price_range"`
	SortBy     string `json:"sort_by" form:"sort_by"`
}

const (
	PriceRangeAll    = "all"
	PriceRangeLow    = "low"
	PriceRangeMedium = "medium"
	PriceRangeHigh   = "high"

	SortDefault   = "default"
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
	SortName      = "name"
)
