package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/trackly-app/trackly/internal/analytics"
	"github.com/trackly-app/trackly/internal/config"
	"github.com/trackly-app/trackly/internal/middleware"
	"github.com/trackly-app/trackly/internal/models"
	"github.com/trackly-app/trackly/internal/repository"
	"github.com/trackly-app/trackly/internal/utils/email"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is returned when registering an already-taken email
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned on any login mismatch
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service handles business logic
type Service struct {
	repo       *repository.Repository
	log        *logrus.Logger
	config     *config.Config
	sender     *email.Sender
	thresholds analytics.Thresholds
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, sender *email.Sender) *Service {
	return &Service{
		repo:       repo,
		log:        log,
		config:     cfg,
		sender:     sender,
		thresholds: analytics.DefaultThresholds,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(name, email, password string) (*models.User, error) {
	if _, err := s.repo.FindUserByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token with the user
func (s *Service) Login(email, password string) (string, *models.User, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, user, nil
}

// CurrentUser loads the authenticated user's profile
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindUserByID(userID)
}

// userIDFromContext resolves the authenticated user ID placed in the
// context by the auth middleware.
func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := middleware.UserID(ctx)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
