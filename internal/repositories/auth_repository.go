package repositories

import (
	"context"
	"fmt"
	"time"

	"hospitality_backend/internal/models"
)

// AuthRepository defines the interface for user account database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, exec SQLExecutor, user *models.User) (int64, error)
	FindUserByUsername(ctx context.Context, exec SQLExecutor, username string) (*models.User, error)
	FindUserByID(ctx context.Context, exec SQLExecutor, userID int64) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, exec SQLExecutor, userID int64, passwordHash string) error
	DeleteUser(ctx context.Context, exec SQLExecutor, userID int64) error
}

type authRepository struct{}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository() AuthRepository {
	return &authRepository{}
}

const userColumns = `id, username, role, password_hash, created_at, updated_at`

// CreateUser inserts a new user. user.PasswordHash must already be hashed.
func (r *authRepository) CreateUser(ctx context.Context, exec SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, role, password_hash, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	user.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query, user.Username, user.Role, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return 0, translateError(err, "creating user")
	}
	return user.ID, nil
}

// FindUserByUsername retrieves a user, password hash included.
func (r *authRepository) FindUserByUsername(ctx context.Context, exec SQLExecutor, username string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	if err := exec.GetContext(ctx, &user, query, username); err != nil {
		return nil, translateError(err, fmt.Sprintf("finding user by username %s", username))
	}
	return &user, nil
}

func (r *authRepository) FindUserByID(ctx context.Context, exec SQLExecutor, userID int64) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := exec.GetContext(ctx, &user, query, userID); err != nil {
		return nil, translateError(err, fmt.Sprintf("finding user by ID %d", userID))
	}
	return &user, nil
}

func (r *authRepository) UpdatePasswordHash(ctx context.Context, exec SQLExecutor, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	res, err := exec.ExecContext(ctx, query, passwordHash, time.Now(), userID)
	if err != nil {
		return translateError(err, "updating password hash")
	}
	return expectAffected(res, fmt.Sprintf("updating password for user %d", userID))
}

func (r *authRepository) DeleteUser(ctx context.Context, exec SQLExecutor, userID int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return translateError(err, "deleting user")
	}
	return expectAffected(res, fmt.Sprintf("deleting user %d", userID))
}
