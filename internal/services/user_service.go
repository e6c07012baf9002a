package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetlabs/sweetshop-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByUsername(username string) (models.User, error)
	Register(username, password string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	EnsureAdmin(username, password string) error
}

// UserService provides business logic for accounts and credentials.
type UserService struct {
	db *sqlx.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sqlx.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByUsername retrieves a single user by username, without the
// password hash.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	err := s.db.Get(&user, "SELECT id, username, is_admin, created_at FROM users WHERE username = ?", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// Register creates a new user with a bcrypt-hashed password. The username
// check happens up front for a friendly error, but the UNIQUE constraint on
// users.username is the real guard: a constraint violation on insert is also
// reported as a duplicate, so concurrent registrations cannot slip through.
func (s *UserService) Register(username, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.Get(&count, "SELECT COUNT(*) FROM users WHERE username = ?", username); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrDuplicateUsername
	}

	id := uuid.New().String()
	_, err = tx.Exec("INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)",
		id, username, string(hashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}

	var user models.User
	if err := tx.Get(&user, "SELECT id, username, is_admin, created_at FROM users WHERE id = ?", id); err != nil {
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials. An unknown username and a wrong
// password both produce ErrInvalidCredentials.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	err := s.db.Get(&user, "SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = ?", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't carry the password hash any further
	user.PasswordHash = ""
	return user, nil
}

// EnsureAdmin seeds the admin account on first startup. It is a no-op when
// the username already exists.
func (s *UserService) EnsureAdmin(username, password string) error {
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM users WHERE username = ?", username); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = s.db.Exec("INSERT INTO users (id, username, password_hash, is_admin) VALUES (?, ?, ?, 1)",
		uuid.New().String(), username, string(hashedPassword))
	return err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
