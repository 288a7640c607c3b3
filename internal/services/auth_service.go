package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospitality_backend/internal/models"
	"hospitality_backend/internal/repositories"
	"hospitality_backend/pkg/utils"

	"github.com/rs/zerolog"
)

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse DTO
type LoginResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// ChangePasswordRequest DTO
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// Profile is the caller's account and, when present, staff record.
type Profile struct {
	User  *models.User        `json:"user"`
	Staff *models.StaffMember `json:"staff,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error
	GetProfile(ctx context.Context, actor Actor) (*Profile, error)
	CreateSuperuser(ctx context.Context, username, password string) (*models.User, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo  repositories.AuthRepository
	staffRepo repositories.StaffRepository
	tx        repositories.Transactor
	tokens    *utils.JWTManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, staffRepo repositories.StaffRepository, tx repositories.Transactor, tokens *utils.JWTManager) AuthService {
	return &authService{
		authRepo:  authRepo,
		staffRepo: staffRepo,
		tx:        tx,
		tokens:    tokens,
	}
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords fail the same way.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.authRepo.FindUserByUsername(ctx, s.tx.Reader(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError(err, "finding user for login")
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, storageError(err, "generating access token")
	}

	zerolog.Ctx(ctx).Info().Int64("logged_in_user", user.ID).Msgf("%d logged in", user.ID)
	return &LoginResponse{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		user, err := s.authRepo.FindUserByID(ctx, exec, actor.UserID)
		if err != nil {
			return lookupError(err, "user not found", "loading user for password change")
		}
		if !utils.CheckPassword(req.CurrentPassword, user.PasswordHash) {
			return ErrWrongPassword
		}
		if utils.CheckPassword(req.NewPassword, user.PasswordHash) {
			return ErrSamePassword
		}

		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			return storageError(err, "hashing new password")
		}
		if err := s.authRepo.UpdatePasswordHash(ctx, exec, user.ID, hash); err != nil {
			return storageError(err, "updating password hash")
		}
		return nil
	})
	if err != nil {
		return storageError(err, "changing password")
	}

	zerolog.Ctx(ctx).Info().Msg("password changed")
	return nil
}

func (s *authService) GetProfile(ctx context.Context, actor Actor) (*Profile, error) {
	user, err := s.authRepo.FindUserByID(ctx, s.tx.Reader(), actor.UserID)
	if err != nil {
		return nil, lookupError(err, "user not found", "loading profile")
	}

	profile := &Profile{User: user}
	staff, err := s.staffRepo.GetStaffMemberByUserID(ctx, s.tx.Reader(), user.ID)
	switch {
	case err == nil:
		profile.Staff = staff
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, storageError(err, "loading staff profile")
	}
	return profile, nil
}

// CreateSuperuser bootstraps a manager account with no staff record.
func (s *authService) CreateSuperuser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("username is required")
	}
	if len(password) < 6 {
		return nil, validationError("password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, storageError(err, "hashing superuser password")
	}
	user := &models.User{Username: username, Role: models.RoleManager, PasswordHash: hash}

	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.authRepo.CreateUser(ctx, exec, user); err != nil {
			return writeError(err, "username already exists", "creating superuser")
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err, "creating superuser")
	}

	zerolog.Ctx(ctx).Info().Str("username", username).Msg("superuser created")
	return user, nil
}
