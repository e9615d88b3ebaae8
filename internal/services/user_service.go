package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error)

	// Driver operations
	SetAvailability(ctx context.Context, driverID primitive.ObjectID, available bool) error
	GetAvailableDrivers(ctx context.Context) ([]*models.User, error)

	// Admin operations
	CreateDriver(ctx context.Context, request *CreateDriverRequest) (*models.User, error)
	ListUsers(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error)
	SetUserStatus(ctx context.Context, userID primitive.ObjectID, status models.UserStatus) error
	DeleteUser(ctx context.Context, userID primitive.ObjectID) error
}

// UpdateProfileRequest deliberately excludes role and status: profile updates
// never escalate privileges.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	FCMToken string `json:"fcm_token"`
}

type CreateDriverRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,phone"`
	Password      string `json:"password" validate:"required,strong_password"`
	LicenseNumber string `json:"license_number" validate:"required"`
}

type userService struct {
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewUserService(userRepo interfaces.UserRepository, logger *logger.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updates := map[string]interface{}{}
	if request.Name != "" {
		updates["name"] = request.Name
	}
	if request.Phone != "" {
		updates["phone"] = request.Phone
	}
	if request.FCMToken != "" {
		updates["fcm_token"] = request.FCMToken
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) SetAvailability(ctx context.Context, driverID primitive.ObjectID, available bool) error {
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if driver.Role != models.RoleDriver {
		return errors.New("availability applies to drivers only")
	}

	return s.userRepo.Update(ctx, driverID, map[string]interface{}{"is_available": available})
}

func (s *userService) GetAvailableDrivers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAvailableDrivers(ctx)
}

func (s *userService) CreateDriver(ctx context.Context, request *CreateDriverRequest) (*models.User, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	available := true
	driver := &models.User{
		Name:          request.Name,
		Email:         email,
		Phone:         request.Phone,
		Password:      string(hashed),
		Role:          models.RoleDriver,
		Status:        models.UserStatusActive,
		AuthProvider:  models.AuthProviderEmail,
		IsAvailable:   &available,
		LicenseNumber: request.LicenseNumber,
	}

	if err := s.userRepo.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	s.logger.WithUserID(driver.ID).Info("Driver account created")

	return driver, nil
}

func (s *userService) ListUsers(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	if role != "" {
		return s.userRepo.GetByRole(ctx, role, params)
	}
	return s.userRepo.List(ctx, params)
}

func (s *userService) SetUserStatus(ctx context.Context, userID primitive.ObjectID, status models.UserStatus) error {
	return s.userRepo.Update(ctx, userID, map[string]interface{}{"status": status})
}

func (s *userService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	return s.userRepo.Delete(ctx, userID)
}
