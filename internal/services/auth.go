package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/models"
	"dating-app-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token validation
type AuthService struct {
	store       *repository.Store
	jwtSecret   string
	jwtLifetime time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(store *repository.Store, jwtSecret string, jwtLifetime time.Duration) *AuthService {
	return &AuthService{
		store:       store,
		jwtSecret:   jwtSecret,
		jwtLifetime: jwtLifetime,
	}
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Token string          `json:"token"`
	User  dto.UserForList `json:"user"`
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req dto.UserForRegister) (*dto.UserForDetailed, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	repo := s.store.Repository()
	username := strings.ToLower(strings.TrimSpace(req.Username))

	exists, err := repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	now := s.store.Now()
	dob := req.DateOfBirth.UTC()
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Gender:       req.Gender,
		DateOfBirth:  time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC),
		KnownAs:      req.KnownAs,
		City:         req.City,
		Country:      req.Country,
		Created:      now,
		LastActive:   now,
	}
	if user.KnownAs == "" {
		user.KnownAs = username
	}

	repo.Add(user)
	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !saved {
		return nil, apperr.Internal(errors.New("registration saved no rows"))
	}

	detailed, err := dto.ToUserForDetailed(user, now)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return detailed, nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req dto.UserForLogin) (*LoginResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	user, err := s.store.Repository().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		return nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	listed, err := dto.ToUserForList(user, s.store.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResponse{Token: token, User: listed}, nil
}

// GenerateJWT generates a JWT token for a user
func (s *AuthService) GenerateJWT(userID int) (string, error) {
	now := s.store.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.jwtLifetime).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *AuthService) ValidateJWT(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.store.Now))

	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	// JSON numbers decode as float64
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, fmt.Errorf("user_id not found in token")
	}

	return int(userID), nil
}
