package services

import (
	"context"
	"fmt"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/repositories"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/auth"
)

// AuthService issues JWTs for portal users.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a customer account with a hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation(fmt.Sprintf("email %s is already registered", email))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and returns a signed token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (token, refresh string, err error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return "", "", apperr.Validation("invalid email or password")
	}

	token, err = auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", "", err
	}
	refresh, err = auth.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return "", "", err
	}
	return token, refresh, nil
}
