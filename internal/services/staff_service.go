package services

import (
	"context"
	"errors"
	"strings"

	"hospitality_backend/internal/models"
	"hospitality_backend/internal/repositories"
	"hospitality_backend/pkg/utils"
)

// RegisterStaffRequest DTO. The phone number becomes the username and the id
// number the initial password.
type RegisterStaffRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,number,max=10"`
	IDNumber    string `json:"id_number" validate:"required,number,max=8"`
	Department  string `json:"department" validate:"required,department"`
}

// StaffPage is one page of the staff directory.
type StaffPage struct {
	Staff []models.StaffMember `json:"staff"`
	Total int                  `json:"total"`
}

// --- StaffService Interface ---
type StaffService interface {
	RegisterStaff(ctx context.Context, req RegisterStaffRequest) (*models.StaffMember, error)
	DeleteStaff(ctx context.Context, actor Actor, staffID int64) error
	ListStaff(ctx context.Context, actor Actor, page, pageSize int, search *string) (*StaffPage, error)
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo repositories.StaffRepository
	userRepo  repositories.AuthRepository
	tx        repositories.Transactor
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, ur repositories.AuthRepository, tx repositories.Transactor) StaffService {
	return &staffService{
		staffRepo: sr,
		userRepo:  ur,
		tx:        tx,
	}
}

// RegisterStaff creates the user account and the staff record together.
func (s *staffService) RegisterStaff(ctx context.Context, req RegisterStaffRequest) (*models.StaffMember, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.IDNumber = strings.TrimSpace(req.IDNumber)
	req.Department = strings.ToLower(strings.TrimSpace(req.Department))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.IDNumber)
	if err != nil {
		return nil, storageError(err, "hashing staff password")
	}

	const conflictMsg = "id number or phone number already exists"
	var staff *models.StaffMember
	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		user := &models.User{Username: req.PhoneNumber, Role: req.Department, PasswordHash: hash}
		userID, err := s.userRepo.CreateUser(ctx, exec, user)
		if err != nil {
			return writeError(err, conflictMsg, "creating staff user")
		}

		staff, err = s.staffRepo.CreateStaffMember(ctx, exec, &models.StaffMember{
			UserID:      userID,
			Name:        req.Name,
			IDNumber:    req.IDNumber,
			PhoneNumber: req.PhoneNumber,
			Department:  req.Department,
		})
		if err != nil {
			return writeError(err, conflictMsg, "creating staff member")
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err, "registering staff")
	}

	utils.LogInfo(ctx, "new staff and user profile created", map[string]interface{}{
		"staff_id":    staff.ID,
		"new_user_id": staff.UserID,
	})
	return staff, nil
}

// DeleteStaff removes a staff record and its user account. The caller must be
// a manager both in the token and in the stored account.
func (s *staffService) DeleteStaff(ctx context.Context, actor Actor, staffID int64) error {
	if !actor.IsManager() {
		return ErrManagerOnly
	}

	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		caller, err := s.userRepo.FindUserByID(ctx, exec, actor.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrManagerOnly
			}
			return storageError(err, "loading caller account")
		}
		if caller.Role != models.RoleManager {
			return ErrManagerOnly
		}

		staff, err := s.staffRepo.GetStaffMemberByID(ctx, exec, staffID)
		if err != nil {
			return lookupError(err, "staff member does not exist", "loading staff member")
		}
		if staff.UserID == caller.ID {
			return domainError("you cannot delete your own staff profile")
		}

		if err := s.staffRepo.DeleteStaffMember(ctx, exec, staff.ID); err != nil {
			if errors.Is(err, repositories.ErrForeignKey) {
				return &Error{kind: ErrConflict, msg: "staff member has carwash income records and cannot be deleted", cause: err}
			}
			return storageError(err, "deleting staff member")
		}
		if err := s.userRepo.DeleteUser(ctx, exec, staff.UserID); err != nil {
			return storageError(err, "deleting staff user")
		}
		return nil
	})
	if err != nil {
		return storageError(err, "deleting staff")
	}

	utils.LogInfo(ctx, "staff profile has been deleted", map[string]interface{}{"staff_id": staffID})
	return nil
}

func (s *staffService) ListStaff(ctx context.Context, actor Actor, page, pageSize int, search *string) (*StaffPage, error) {
	if !actor.IsManager() {
		return nil, ErrManagerOnly
	}

	staff, total, err := s.staffRepo.GetStaffMembers(ctx, s.tx.Reader(), page, pageSize, search)
	if err != nil {
		return nil, storageError(err, "listing staff")
	}
	if staff == nil {
		staff = []models.StaffMember{}
	}
	return &StaffPage{Staff: staff, Total: total}, nil
}
