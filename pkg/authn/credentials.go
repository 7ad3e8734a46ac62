package authn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artikahq/authkit/pkg/logger"
	"github.com/artikahq/authkit/pkg/sanitizer"
	"github.com/artikahq/authkit/pkg/validator"
)

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// CredentialAuthenticator defines credential-based authentication operations.
type CredentialAuthenticator interface {
	Register(ctx context.Context, params RegisterParams) (*Identity, error)
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
}

type credentialService struct {
	storage          CredentialStorage
	bcryptCost       int
	logger           *slog.Logger
	passwordStrength validator.PasswordStrengthConfig

	// Hooks for extending credential authentication behavior.
	afterRegister func(ctx context.Context, identity *Identity) error
	beforeLogin   func(ctx context.Context, email string) error
}

// CredentialOption configures a credential service during construction.
type CredentialOption func(*credentialService)

// WithCredentialLogger sets a custom logger for the service.
func WithCredentialLogger(l *slog.Logger) CredentialOption {
	return func(s *credentialService) {
		s.logger = l
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) CredentialOption {
	return func(s *credentialService) {
		s.bcryptCost = cost
	}
}

// WithPasswordStrength sets custom password strength requirements.
func WithPasswordStrength(cfg validator.PasswordStrengthConfig) CredentialOption {
	return func(s *credentialService) {
		s.passwordStrength = cfg
	}
}

// WithAfterRegister sets a hook that runs after successful registration (async).
func WithAfterRegister(fn func(context.Context, *Identity) error) CredentialOption {
	return func(s *credentialService) {
		s.afterRegister = fn
	}
}

// WithBeforeLogin sets a hook that runs before each authentication attempt (sync).
func WithBeforeLogin(fn func(context.Context, string) error) CredentialOption {
	return func(s *credentialService) {
		s.beforeLogin = fn
	}
}

// NewCredentialService creates a credential authentication service.
func NewCredentialService(storage CredentialStorage, opts ...CredentialOption) CredentialAuthenticator {
	s := &credentialService{
		storage:          storage,
		bcryptCost:       bcrypt.DefaultCost,
		logger:           logger.NewDiscard(),
		passwordStrength: validator.DefaultPasswordStrength(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates a new identity with a password hash. The plaintext
// password never reaches storage. Duplicate emails fail with ErrEmailTaken.
func (s *credentialService) Register(ctx context.Context, params RegisterParams) (*Identity, error) {
	email := sanitizer.NormalizeEmail(params.Email)
	firstName := sanitizer.NormalizeName(params.FirstName)
	lastName := sanitizer.NormalizeName(params.LastName)

	if err := validator.Apply(
		validator.RequiredString("firstName", firstName),
		validator.RequiredString("lastName", lastName),
		validator.ValidEmail("email", email),
		validator.StrongPassword("password", params.Password, s.passwordStrength),
	); err != nil {
		return nil, err
	}

	_, err := s.storage.GetIdentityByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrIdentityNotFound) {
		return nil, fmt.Errorf("failed to check existing identity: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &Identity{
		ID:         uuid.New(),
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		AuthMethod: MethodCredentials,
		CreatedAt:  time.Now(),
	}

	if err := s.storage.CreateIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	if err := s.storage.StorePasswordHash(ctx, identity.ID, hash); err != nil {
		// Remove the identity record if the hash write fails, otherwise the
		// account would exist but be unable to log in.
		if deleteErr := s.storage.DeleteIdentity(ctx, identity.ID); deleteErr != nil {
			s.logger.Error("failed to cleanup identity after password save failure",
				logger.UserID(identity.ID.String()),
				slog.String("email", identity.Email),
				logger.Error(deleteErr),
				logger.Component("credentials"),
			)
		}
		return nil, fmt.Errorf("failed to save password: %w", err)
	}

	if s.afterRegister != nil {
		go s.runAfterRegister(identity)
	}

	return identity, nil
}

// Authenticate verifies an email/password pair and returns the identity on
// success. Every failure path returns ErrInvalidCredentials so a caller
// cannot tell an unknown email from a wrong password or an OAuth-only
// account. Failure has no side effects.
func (s *credentialService) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	email = sanitizer.NormalizeEmail(email)

	if s.beforeLogin != nil {
		if err := s.beforeLogin(ctx, email); err != nil {
			return nil, fmt.Errorf("login blocked: %w", err)
		}
	}

	identity, err := s.storage.GetIdentityByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("authentication failed: identity lookup",
			logger.Error(err),
			logger.Component("credentials"),
		)
		return nil, ErrInvalidCredentials
	}

	hash, err := s.storage.GetPasswordHash(ctx, identity.ID)
	if err != nil {
		s.logger.Debug("authentication failed: no password hash",
			logger.UserID(identity.ID.String()),
			logger.Component("credentials"),
		)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		s.logger.Debug("authentication failed: password mismatch",
			logger.UserID(identity.ID.String()),
			logger.Component("credentials"),
		)
		return nil, ErrInvalidCredentials
	}

	return identity, nil
}

func (s *credentialService) runAfterRegister(identity *Identity) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("afterRegister hook panicked",
				logger.UserID(identity.ID.String()),
				slog.Any("panic", r),
				logger.Component("credentials"),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.afterRegister(ctx, identity); err != nil {
		s.logger.Error("afterRegister hook failed",
			logger.UserID(identity.ID.String()),
			logger.Error(err),
			logger.Component("credentials"),
		)
	}
}
