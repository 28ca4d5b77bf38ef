package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/gcare-service/internal/cache"
	"github.com/Dan9191/gcare-service/internal/config"
	"github.com/Dan9191/gcare-service/internal/engine"
	"github.com/Dan9191/gcare-service/internal/models"
	"github.com/Dan9191/gcare-service/internal/repository"
	"github.com/Dan9191/gcare-service/internal/utils/email"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when a request carries no authenticated user
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for missing required fields
	ErrInvalidInput = errors.New("invalid input")
)

// Store persists users and assessments
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateAssessment(ctx context.Context, a *models.Assessment) error
	UpdateAssessment(ctx context.Context, a *models.Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID, userID int64) (*models.Assessment, error)
	ListAssessments(ctx context.Context, userID int64) ([]models.AssessmentSummary, error)
	DeleteAssessment(ctx context.Context, id uuid.UUID, userID int64) error
	ListOwnedAssessments(ctx context.Context) ([]repository.OwnedAssessment, error)
}

// ReportCache memoizes evaluated reports by snapshot fingerprint
type ReportCache interface {
	Get(ctx context.Context, fingerprint string) (*models.Report, error)
	Set(ctx context.Context, fingerprint string, report *models.Report) error
}

// Mailer delivers assessment emails
type Mailer interface {
	SendAssessmentSummary(ctx context.Context, to, username, name string, r models.Report) error
	SendReviewDigest(ctx context.Context, to, username string, entries []email.DigestEntry) error
}

// Service handles business logic
type Service struct {
	repo     Store
	cache    ReportCache
	mailer   Mailer
	registry *engine.Registry
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
}

// NewService initializes a new service. cache may be nil.
func NewService(repo Store, cache ReportCache, mailer Mailer, registry *engine.Registry, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		mailer:   mailer,
		registry: registry,
		log:      log,
		config:   cfg,
		now:      time.Now,
	}
}

// Countries lists the built-in jurisdictions
func (s *Service) Countries() []models.CountryRiskProfile {
	return s.registry.Profiles()
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(s.config.TokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Evaluate produces the report for a snapshot, consulting the cache first.
// Cache failures are logged and never fail the evaluation.
func (s *Service) Evaluate(ctx context.Context, snapshot models.Snapshot) (models.Report, error) {
	if s.cache == nil {
		return engine.Evaluate(snapshot, s.registry), nil
	}

	fingerprint, err := cache.Fingerprint(snapshot)
	if err != nil {
		return models.Report{}, err
	}
	cached, err := s.cache.Get(ctx, fingerprint)
	if err != nil {
		s.log.Warnf("Report cache read failed: %v", err)
	}
	if cached != nil {
		return *cached, nil
	}

	report := engine.Evaluate(snapshot, s.registry)
	if err := s.cache.Set(ctx, fingerprint, &report); err != nil {
		s.log.Warnf("Report cache write failed: %v", err)
	}
	return report, nil
}
