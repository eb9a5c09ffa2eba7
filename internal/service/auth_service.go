package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"keepsake-be/internal/entities"
	"keepsake-be/internal/jwt"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(req *models.LoginRequest) (string, error)
	GetProfile(userID string) (*models.UserResponse, error)
	ListUsers() ([]*models.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens *jwt.TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user account and returns it with an issued token
func (s *authService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	// Hash password. Only ever store the irreversible hash.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Role defaults to the least-privileged value when omitted
	role := entities.ParseRole(req.Role)

	user, err := s.userRepo.Create(req.Name, req.Email, string(hashedPassword), role)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Generate JWT token for automatic login after registration
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.RegisterResponse{
		User:  models.NewUserResponse(user),
		Token: token,
	}, nil
}

// Login authenticates a user and returns a JWT token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authService) Login(req *models.LoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// GetProfile fetches the caller's own record, sans password
func (s *authService) GetProfile(userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return models.NewUserResponse(user), nil
}

// ListUsers returns all users, sanitized. Admin only; the role check
// happens in the middleware layer.
func (s *authService) ListUsers() ([]*models.UserResponse, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = models.NewUserResponse(user)
	}
	return responses, nil
}
