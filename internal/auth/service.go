package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

// UsernamePattern is the accepted username format: 3-64 characters,
// alphanumeric plus underscore and hyphen.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNameRequired       = errors.New("name is required")
	ErrUsernameInvalid    = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid       = errors.New("invalid email format")
)

// DuplicateUserError names the field that collides with an existing account.
// It matches ErrUserExists.
type DuplicateUserError struct {
	Field string // "email" or "username"
}

func (e *DuplicateUserError) Error() string {
	return "the " + e.Field + " has already been taken"
}

func (e *DuplicateUserError) Is(target error) bool {
	return target == ErrUserExists
}

// UserStore is the persistence needed by Service.
type UserStore interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

// Registration holds the fields needed to open an account.
type Registration struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Service handles account registration and credential checks.
type Service struct {
	users    UserStore
	config   config.Auth
	validate *validator.Validate

	// Compared against when the account is missing, so unknown and known
	// identifiers cost the same bcrypt work.
	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a new authentication service.
func NewService(users UserStore, cfg config.Auth) *Service {
	return &Service{
		users:    users,
		config:   cfg,
		validate: validator.New(),
	}
}

// Register validates and persists a new user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, reg Registration) (*entities.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)

	if reg.Name == "" {
		return nil, ErrNameRequired
	}
	if !UsernamePattern.MatchString(reg.Username) {
		return nil, ErrUsernameInvalid
	}
	if err := s.validate.Var(reg.Email, "required,email"); err != nil {
		return nil, ErrEmailInvalid
	}

	if err := s.ensureAvailable(ctx, reg); err != nil {
		return nil, err
	}

	passwordHash, err := HashPassword(reg.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:         reg.Name,
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: passwordHash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// A concurrent registration can win the race after ensureAvailable
		if column, ok := database.UniqueViolation(err); ok && column != "" {
			return nil, &DuplicateUserError{Field: column}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Service) ensureAvailable(ctx context.Context, reg Registration) error {
	_, err := s.users.GetUserByEmail(ctx, reg.Email)
	if err == nil {
		return &DuplicateUserError{Field: "email"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	_, err = s.users.GetUserByUsername(ctx, reg.Username)
	if err == nil {
		return &DuplicateUserError{Field: "username"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	return nil
}

// Authenticate checks a password against the account identified by email
// (when the identifier contains "@") or username. Unknown accounts and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*entities.User, error) {
	var (
		user *entities.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.users.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.checkDummyPassword(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) checkDummyPassword(password string) {
	s.dummyOnce.Do(func() {
		hash, err := HashPassword("dummy-password-for-timing", s.config.BcryptCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	if s.dummyHash != "" {
		_ = CheckPassword(password, s.dummyHash)
	}
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
