package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/scribe-be/internal/database"
	"github.com/isdelr/scribe-be/internal/models"
)

// UserStore persists credential records keyed by email.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// normalizeEmail is applied on every write and lookup so that email
// uniqueness holds regardless of case and surrounding whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const userColumns = "id, username, email, password_hash, initial_placement, created_at"

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	err := scanner.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.InitialPlacement, &user.CreatedAt)
	return user, err
}

// FindByEmail retrieves a user by email, including the password hash.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", normalizeEmail(email))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByID retrieves a user by identifier, including the password hash.
func (s *UserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// Create inserts a new user with the onboarding flag unset and returns its identifier.
// The unique index on email makes the insert atomic with respect to duplicates.
func (s *UserStore) Create(ctx context.Context, username, email, passwordHash string) (string, error) {
	id := uuid.New().String()

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO users(id, username, email, password_hash, initial_placement) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, id, username, normalizeEmail(email), passwordHash, false)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return "", fmt.Errorf("user with email %s: %w", email, ErrAlreadyExists)
		}
		return "", err
	}
	return id, nil
}
