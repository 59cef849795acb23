package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"social-chat-backend/internal/models"
	"social-chat-backend/internal/repository"
)

const tokenTTL = 24 * time.Hour

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("name, email and password are required")
)

// UserService handles registration, login and token issuance.
type UserService struct {
	userRepo  *repository.UserRepository
	blobStore BlobStore
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, blobStore BlobStore, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blobStore: blobStore,
		jwtSecret: jwtSecret,
	}
}

// RegisterParams holds registration input. ProfilePic is optional.
type RegisterParams struct {
	Name       string
	Email      string
	Password   string
	ProfilePic []byte
}

// Register creates a new user. A failed profile picture upload is not
// fatal: the user is created with an empty picture URL.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, string, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return nil, "", ErrMissingFields
	}

	exists, err := s.userRepo.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New().String()

	profilePicURL := ""
	if len(params.ProfilePic) > 0 && s.blobStore != nil {
		url, err := s.blobStore.Store(ctx, params.ProfilePic, "profiles", userID+".jpg")
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to upload profile picture")
		} else {
			profilePicURL = url
		}
	}

	user := &models.User{
		ID:            userID,
		Name:          params.Name,
		Email:         params.Email,
		PasswordHash:  string(hash),
		ProfilePicURL: profilePicURL,
		CreatedAt:     time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a bearer token. The same error
// is returned for an unknown email and a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken issues a signed bearer token with one day of validity.
func (s *UserService) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a bearer token and returns the user ID.
func (s *UserService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}
