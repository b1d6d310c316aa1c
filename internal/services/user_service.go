package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/wizallet/wizallet-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Password length bounds at registration. The upper bound is bcrypt's 72-byte
// input limit; without the check an overlong password would surface as a 500.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, email, password string, initialBalance float64) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	GetUserByID(id int64) (models.User, error)
	ListUsers() ([]models.User, error)
}

// UserService provides business logic for accounts and credentials.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register validates the input, hashes the password and persists the user.
// Username and email uniqueness is enforced by the store's constraints, not a
// pre-check, so two racing registrations cannot both succeed.
func (s *UserService) Register(username, email, password string, initialBalance float64) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, models.NewValidationError("username, email and password are required")
	}
	if len(password) < MinPasswordLength {
		return models.User{}, models.NewValidationError(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return models.User{}, models.NewValidationError(fmt.Sprintf("password must be at most %d characters", MaxPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO users (username, email, password_hash, initial_balance) VALUES (?, ?, ?, ?)",
		username, email, string(hashedPassword), initialBalance,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.NewConflictError("username or email already exists")
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	// Fetched record carries no password hash.
	return s.GetUserByID(id)
}

// Authenticate verifies a user's credentials by exact username match. The
// failure is the same whether the user is unknown or the password is wrong, so
// usernames cannot be enumerated.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow(
		"SELECT id, username, email, password_hash, initial_balance, created_at FROM users WHERE username = ?",
		username,
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.InitialBalance, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.NewAuthenticationError("invalid credentials")
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, models.NewAuthenticationError("invalid credentials")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow(
		"SELECT id, username, email, initial_balance, created_at FROM users WHERE id = ?",
		id,
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.InitialBalance, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.NewNotFoundError("user not found")
		}
		return models.User{}, err
	}
	return user, nil
}

// ListUsers retrieves every user's non-sensitive fields.
func (s *UserService) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, email, initial_balance, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.InitialBalance, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// isUniqueViolation reports whether err is the store rejecting a duplicate
// username or email.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
