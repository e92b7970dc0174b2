package service

import (
	"context"
	"errors"
	"time"

	"github.com/bookshop/bookshop-go/internal/crypto"
	"github.com/bookshop/bookshop-go/internal/model"
	"github.com/bookshop/bookshop-go/internal/repository"
)

// Error strings below are client-facing and surface verbatim in the
// response envelope.
var (
	ErrMissingFields      = errors.New("Please provide username, email and password")
	ErrMissingCredentials = errors.New("Please provide email and password")
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// AuthService handles registration and login.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns the public user record
// with a signed auth token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResult, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return model.AuthResult{}, ErrMissingFields
	}

	exists, err := s.users.Exists(ctx, req.Email, req.Username)
	if err != nil {
		return model.AuthResult{}, err
	}
	if exists {
		return model.AuthResult{}, ErrUserExists
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResult{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Covers a registration that lost the race against the
		// existence check above.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.AuthResult{}, ErrUserExists
		}
		return model.AuthResult{}, err
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResult{}, err
	}

	return model.AuthResult{
		Token: token,
		User: model.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// Login authenticates a user and returns an auth token. Unknown email and
// wrong password produce the same ErrInvalidCredentials so callers cannot
// tell which part of the pair was wrong.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return model.AuthResult{}, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResult{}, ErrInvalidCredentials
		}
		return model.AuthResult{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResult{}, err
	}
	if !match {
		return model.AuthResult{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResult{}, err
	}

	return model.AuthResult{
		Token: token,
		User: model.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
