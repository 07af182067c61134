package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/isdelr/scribe-be/internal/models"
)

// bcrypt only looks at the first 72 bytes of a password.
const maxPasswordBytes = 72

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Resolve(token string) (string, error)
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer issues and verifies identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token            string
	ExpiresAt        time.Time
	UserID           string
	Username         string
	Email            string
	InitialPlacement bool
}

// UserService provides registration, login and profile lookups.
type UserService struct {
	store  *UserStore
	hasher PasswordHasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService creates a new UserService.
func NewUserService(store *UserStore, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{store: store, hasher: hasher, tokens: tokens}
}

// Register creates a new account. It does not log the user in.
func (s *UserService) Register(ctx context.Context, username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingField
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password longer than %d bytes: %w", maxPasswordBytes, ErrInvalidField)
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("user with email %s: %w", email, ErrAlreadyExists)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	// The store's unique index still guards against a concurrent registration
	// that slipped past the lookup above.
	if _, err := s.store.Create(ctx, strings.TrimSpace(username), email, hash); err != nil {
		return err
	}
	return nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Pay the same hashing cost as a wrong password.
			s.hasher.Verify(password, s.unknownUserHash())
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:            token,
		ExpiresAt:        expiresAt,
		UserID:           user.ID,
		Username:         user.Username,
		Email:            user.Email,
		InitialPlacement: user.InitialPlacement,
	}, nil
}

// unknownUserHash returns a hash of the configured cost that no password
// can match in practice.
func (s *UserService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("scribe-unknown-user-placeholder")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

// Resolve returns the user ID bound to token.
func (s *UserService) Resolve(token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return userID, nil
}

// GetProfile returns the public profile of a user.
func (s *UserService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	return user.Profile(), nil
}
