// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"notevault/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines the fields a user may change on their own
// account. Nil pointers mean "leave unchanged"; Password and
// ConfirmPassword must match when both are provided.
type UpdateProfileInput struct {
	Name            *string
	Email           *string
	Password        *string
	ConfirmPassword *string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with a freshly
// issued bearer token. Used by both registration and login.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}
