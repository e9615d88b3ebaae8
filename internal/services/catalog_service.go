package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService serves the public vehicle catalog: available vehicles,
// filtered and sorted in memory.
type CatalogService interface {
	SearchVehicles(ctx context.Context, filter *models.VehicleFilter) ([]*models.Vehicle, error)
	GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
}

type catalogService struct {
	vehicleRepo interfaces.VehicleRepository
	logger      *logger.Logger
}

func NewCatalogService(vehicleRepo interfaces.VehicleRepository, logger *logger.Logger) CatalogService {
	return &catalogService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func (s *catalogService) SearchVehicles(ctx context.Context, filter *models.VehicleFilter) ([]*models.Vehicle, error) {
	vehicles, err := s.vehicleRepo.GetAvailable(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load vehicle catalog")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return FilterVehicles(vehicles, filter), nil
}

func (s *catalogService) GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

// FilterVehicles applies the catalog filter and sort to a vehicle list. Pure:
// the input slice is not mutated and input order is preserved under the
// default sort.
func FilterVehicles(vehicles []*models.Vehicle, filter *models.VehicleFilter) []*models.Vehicle {
	if filter == nil {
		filter = &models.VehicleFilter{}
	}

	result := make([]*models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if !matchesType(v, filter.Type) {
			continue
		}
		if !matchesPriceRange(v.PricePerKm, filter.PriceRange) {
			continue
		}
		result = append(result, v)
	}

	sortVehicles(result, filter.SortBy)

	return result
}

func matchesType(v *models.Vehicle, vehicleType string) bool {
	if vehicleType == "" || vehicleType == "all" {
		return true
	}
	return v.Type == vehicleType
}

func matchesPriceRange(price float64, priceRange string) bool {
	switch priceRange {
	case models.PriceRangeLow:
		return price <= utils.PriceRangeLowMax
	case models.PriceRangeMedium:
		return price > utils.PriceRangeLowMax && price <= utils.PriceRangeMediumMax
	case models.PriceRangeHigh:
		return price > utils.PriceRangeMediumMax
	default:
		return true
	}
}

func sortVehicles(vehicles []*models.Vehicle, sortBy string) {
	switch sortBy {
	case models.SortPriceLow:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].PricePerKm < vehicles[j].PricePerKm
		})
	case models.SortPriceHigh:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].PricePerKm > vehicles[j].PricePerKm
		})
	case models.SortName:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return strings.Compare(vehicles[i].Name, vehicles[j].Name) < 0
		})
	}
	// default: input order
}
