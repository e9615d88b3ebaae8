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
	"gorent/pkg/oauth"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrAccountInactive    = errors.New("account is inactive")
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	SocialLogin(ctx context.Context, request *SocialLoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error

	// ResolveRole returns the user's role, served from cache when fresh and
	// re-read from the store on a miss. The store is authoritative.
	ResolveRole(ctx context.Context, userID primitive.ObjectID) (models.UserRole, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Password string `json:"password" validate:"required,strong_password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FCMToken string `json:"fcm_token"`
}

type SocialLoginRequest struct {
	Provider    string `json:"provider" validate:"required,oneof=google"`
	AccessToken string `json:"access_token" validate:"required"`
	FCMToken    string `json:"fcm_token"`
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type authService struct {
	userRepo  interfaces.UserRepository
	cache     CacheService
	oauth     oauth.Provider
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	cache CacheService,
	oauthProvider oauth.Provider,
	jwtSecret string,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		cache:     cache,
		oauth:     oauthProvider,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates a customer account. Driver and admin accounts are
// provisioned through the admin panel, never through self-registration.
func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
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

	user := &models.User{
		Name:         request.Name,
		Email:        email,
		Phone:        request.Phone,
		Password:     string(hashed),
		Role:         models.RoleCustomer,
		Status:       models.UserStatusActive,
		AuthProvider: models.AuthProviderEmail,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User registered")

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrAccountInactive
	}

	if request.FCMToken != "" && request.FCMToken != user.FCMToken {
		if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"fcm_token": request.FCMToken}); err != nil {
			s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to store FCM token")
		}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to record last login")
	}

	return s.issueTokens(ctx, user)
}

// SocialLogin verifies the provider token, then finds or creates the matching
// account. Social accounts are always customers on first login.
func (s *authService) SocialLogin(ctx context.Context, request *SocialLoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	info, err := s.oauth.GetUserInfo(ctx, request.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("social sign-in failed: %w", err)
	}

	provider := models.AuthProvider(request.Provider)

	user, err := s.userRepo.GetBySocialID(ctx, provider, info.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Link by email when the address already has a password account.
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(info.Email))
		if errors.Is(err, mongo.ErrNoDocuments) {
			user = &models.User{
				Name:         info.Name,
				Email:        strings.ToLower(info.Email),
				Role:         models.RoleCustomer,
				Status:       models.UserStatusActive,
				AuthProvider: provider,
				SocialID:     info.ID,
			}
			if err := s.userRepo.Create(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
		} else if err != nil {
			return nil, err
		} else {
			updates := map[string]interface{}{"social_id": info.ID}
			if err := s.userRepo.Update(ctx, user.ID, updates); err != nil {
				s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to link social account")
			}
			user.SocialID = info.ID
		}
	} else if err != nil {
		return nil, err
	}

	if user.Status != models.UserStatusActive {
		return nil, ErrAccountInactive
	}

	if request.FCMToken != "" && request.FCMToken != user.FCMToken {
		if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"fcm_token": request.FCMToken}); err != nil {
			s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to store FCM token")
		}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to record last login")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	return utils.RefreshAccessToken(refreshToken, s.jwtSecret)
}

func (s *authService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if s.cache != nil {
		s.cache.Delete(ctx, roleCacheKey(userID))
	}
	return s.userRepo.Update(ctx, userID, map[string]interface{}{"fcm_token": ""})
}

func (s *authService) ResolveRole(ctx context.Context, userID primitive.ObjectID) (models.UserRole, error) {
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, roleCacheKey(userID), &cached); err == nil {
			role := models.UserRole(cached)
			if role.Valid() {
				return role, nil
			}
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	role := models.ParseRole(string(user.Role))
	if s.cache != nil {
		if err := s.cache.Set(ctx, roleCacheKey(userID), string(role), utils.RoleCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache user role")
		}
	}

	return role, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, roleCacheKey(user.ID), string(user.Role), utils.RoleCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache user role")
		}
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func roleCacheKey(userID primitive.ObjectID) string {
	return fmt.Sprintf("user_role_%s", userID.Hex())
}
