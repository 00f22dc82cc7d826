package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// HandleCallback processes the Auth0 callback, creating the user record on
// first login
func (s *AuthService) HandleCallback(ctx context.Context, auth0ID, email string, name *string) (*domain.User, error) {
	return s.userRepo.CreateOrGetByAuth0ID(ctx, auth0ID, email, name)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(ctx, auth0ID)
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateName updates the user's display name
func (s *AuthService) UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error) {
	return s.userRepo.UpdateName(ctx, id, name)
}
