package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"
	"gorent/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleService is the admin-side fleet management surface. Customer-facing
// catalog reads live on CatalogService.
type VehicleService interface {
	CreateVehicle(ctx context.Context, request *VehicleRequest) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id primitive.ObjectID, request *VehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id primitive.ObjectID) error
	ListVehicles(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	UploadImage(ctx context.Context, id primitive.ObjectID, reader io.Reader, filename, contentType string, size int64) (string, error)
}

type VehicleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	PricePerKm  float64  `json:"price_per_km" validate:"required,gt=0"`
	IsAvailable *bool    `json:"is_available"`
	Features    []string `json:"features"`
}

type vehicleService struct {
	vehicleRepo interfaces.VehicleRepository
	storage     storage.Provider
	logger      *logger.Logger
}

func NewVehicleService(vehicleRepo interfaces.VehicleRepository, storageProvider storage.Provider, logger *logger.Logger) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		storage:     storageProvider,
		logger:      logger,
	}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, request *VehicleRequest) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	available := true
	if request.IsAvailable != nil {
		available = *request.IsAvailable
	}

	vehicle := &models.Vehicle{
		Name:        request.Name,
		Type:        request.Type,
		PricePerKm:  request.PricePerKm,
		IsAvailable: available,
		Features:    request.Features,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.WithField("vehicle_id", vehicle.ID.Hex()).Info("Vehicle created")

	return vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id primitive.ObjectID, request *VehicleRequest) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updates := map[string]interface{}{
		"name":         request.Name,
		"type":         request.Type,
		"price_per_km": request.PricePerKm,
	}
	if request.IsAvailable != nil {
		updates["is_available"] = *request.IsAvailable
	}
	if request.Features != nil {
		updates["features"] = request.Features
	}

	if err := s.vehicleRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id primitive.ObjectID) error {
	return s.vehicleRepo.Delete(ctx, id)
}

func (s *vehicleService) ListVehicles(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, params)
}

func (s *vehicleService) UploadImage(ctx context.Context, id primitive.ObjectID, reader io.Reader, filename, contentType string, size int64) (string, error) {
	if s.storage == nil {
		return "", errors.New("image storage is not configured")
	}
	if size > utils.MaxImageSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", utils.MaxImageSize)
	}

	if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("vehicles/%s/%s%s", id.Hex(), uuid.NewString(), path.Ext(filename))
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:          key,
		Reader:       reader,
		ContentType:  contentType,
		Size:         size,
		CacheControl: "public, max-age=86400",
		Metadata:     map[string]string{"vehicle_id": id.Hex()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if err := s.vehicleRepo.Update(ctx, id, map[string]interface{}{"image_url": uploaded.URL}); err != nil {
		return "", err
	}

	return uploaded.URL, nil
}
