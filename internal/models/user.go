package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string
type UserStatus string
type AuthProvider string

const (
	RoleCustomer UserRole = "customer"
	RoleDriver   UserRole = "driver"
	RoleAdmin    UserRole = "admin"

	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"

	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// ParseRole maps a stored role string onto the closed role set. Unknown or
// empty values fall back to customer, matching registration defaults.
func ParseRole(s string) UserRole {
	switch UserRole(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDriver:
		return RoleDriver
	default:
		return RoleCustomer
	}
}

// Valid reports whether the role is one of the three known roles.
func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleDriver || r == RoleAdmin
}

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	Phone         string             `json:"phone" bson:"phone"`
	Password      string             `json:"-" bson:"password"`
	Role          UserRole           `json:"role" bson:"role" validate:"required"`
	Status        UserStatus         `json:"status" bson:"status" default:"active"`
	AuthProvider  AuthProvider       `json:"auth_provider" bson:"auth_provider" default:"email"`
	SocialID      string             `json:"social_id,omitempty" bson:"social_id,omitempty"`
	IsAvailable   *bool              `json:"is_available,omitempty" bson:"is_available,omitempty"`
	LicenseNumber string             `json:"license_number,omitempty" bson:"license_number,omitempty"`
	FCMToken      string             `json:"-" bson:"fcm_token,omitempty"`
	LastLoginAt   *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// Available reports driver availability; users without the flag are treated
// as unavailable.
func (u *User) Available() bool {
	return u.IsAvailable != nil && *u.IsAvailable
}
