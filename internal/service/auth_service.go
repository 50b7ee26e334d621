package service

import (
	"context"
	"errors"
	"fmt"

	"campus_market/internal/model"
	"campus_market/internal/repository"
	"campus_market/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidAdminSecret = errors.New("invalid password")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, insert model.InsertUser) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	// AdminLogin gates the moderation dashboard behind the single configured
	// secret and issues an expiring admin token on success.
	AdminLogin(ctx context.Context, password string) (string, error)
}

type authService struct {
	storage       repository.Storage
	jwtUtil       *utils.JWTUtil
	adminPassword string
}

// NewAuthService creates a new AuthService
func NewAuthService(storage repository.Storage, jwtUtil *utils.JWTUtil, adminPassword string) AuthService {
	return &authService{
		storage:       storage,
		jwtUtil:       jwtUtil,
		adminPassword: adminPassword,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, insert model.InsertUser) (*model.User, string, error) {
	hashedPassword, err := utils.HashPassword(insert.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, insert, hashedPassword)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user in storage: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, model.RoleUser)
	if err != nil {
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, model.RoleUser)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// AdminLogin compares the supplied password with the configured admin secret
func (s *authService) AdminLogin(ctx context.Context, password string) (string, error) {
	if password != s.adminPassword {
		return "", ErrInvalidAdminSecret
	}

	token, err := s.jwtUtil.GenerateToken("admin", model.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin token: %w", err)
	}
	return token, nil
}
