package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account creation, login and caller resolution.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	validate   *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
		validate:   newValidator(),
	}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// RegisterUser registers a new user, hashing the password before it is stored.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperrors.Validation("Username, email, and password are required.")
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	// Check if username or email already exists
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, apperrors.Validation("Username already exists.")
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, apperrors.Validation("Email already exists.")
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	log.Printf("Registered user %s (ID: %d)", user.Username, user.ID)
	return user, nil
}

// EnsureSuperuser creates the bootstrap administrator account when it does not exist yet.
func (s *AuthService) EnsureSuperuser(ctx context.Context, username, email, password string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Username:    username,
		Email:       email,
		Password:    string(hashedPassword),
		IsSuperuser: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}
	log.Printf("Created superuser %s", username)
	return nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.Validation("Username, and password are required.")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.Unauthenticated("Invalid credentials")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.Unauthenticated("Invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ResolveCaller validates a token and loads the identity and roles behind it.
// Roles are read from the database on every call so membership changes
// apply to tokens already issued.
func (s *AuthService) ResolveCaller(ctx context.Context, tokenString string) (authz.Caller, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return authz.Anonymous(), apperrors.Wrap(apperrors.KindUnauthenticated, "Invalid or expired token", err)
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return authz.Anonymous(), apperrors.Unauthenticated("Invalid or expired token")
	}

	user, err := s.userRepo.GetByID(ctx, uint(rawID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return authz.Anonymous(), apperrors.Wrap(apperrors.KindUnauthenticated, "User not found or inactive", err)
		}
		return authz.Anonymous(), err
	}
	return authz.NewCaller(user), nil
}

// Profile returns the account of the authenticated caller.
func (s *AuthService) Profile(ctx context.Context, caller authz.Caller) (*models.User, error) {
	if err := authz.Authorize(caller, authz.ActionProfileRead); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, notFoundOr(err, "User not found.")
	}
	return user, nil
}
