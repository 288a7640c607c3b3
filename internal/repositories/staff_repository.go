package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospitality_backend/internal/models"
)

// StaffRepository defines the interface for staff directory database operations.
type StaffRepository interface {
	CreateStaffMember(ctx context.Context, exec SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error)
	GetStaffMemberByID(ctx context.Context, exec SQLExecutor, id int64) (*models.StaffMember, error)
	GetStaffMemberByUserID(ctx context.Context, exec SQLExecutor, userID int64) (*models.StaffMember, error)
	GetStaffMembers(ctx context.Context, exec SQLExecutor, page, pageSize int, searchTerm *string) ([]models.StaffMember, int, error)
	DeleteStaffMember(ctx context.Context, exec SQLExecutor, id int64) error
}

type staffRepository struct{}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository() StaffRepository {
	return &staffRepository{}
}

const staffColumns = `id, user_id, name, id_number, phone_number, department, created_at, updated_at`

func (r *staffRepository) CreateStaffMember(ctx context.Context, exec SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error) {
	query := `INSERT INTO staff_members (user_id, name, id_number, phone_number, department, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	staff.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query,
		staff.UserID, staff.Name, staff.IDNumber, staff.PhoneNumber, staff.Department, staff.CreatedAt,
	).Scan(&staff.ID)
	if err != nil {
		return nil, translateError(err, "creating staff member")
	}
	return staff, nil
}

func (r *staffRepository) GetStaffMemberByID(ctx context.Context, exec SQLExecutor, id int64) (*models.StaffMember, error) {
	var staff models.StaffMember
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE id = $1`
	if err := exec.GetContext(ctx, &staff, query, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("getting staff member %d", id))
	}
	return &staff, nil
}

func (r *staffRepository) GetStaffMemberByUserID(ctx context.Context, exec SQLExecutor, userID int64) (*models.StaffMember, error) {
	var staff models.StaffMember
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE user_id = $1`
	if err := exec.GetContext(ctx, &staff, query, userID); err != nil {
		return nil, translateError(err, fmt.Sprintf("getting staff member for user %d", userID))
	}
	return &staff, nil
}

type staffMemberRow struct {
	models.StaffMember
	TotalCount int `db:"total_count"`
}

// GetStaffMembers lists staff ordered by name. searchTerm matches name,
// phone number or id number.
func (r *staffRepository) GetStaffMembers(ctx context.Context, exec SQLExecutor, page, pageSize int, searchTerm *string) ([]models.StaffMember, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + staffColumns + `, COUNT(*) OVER() AS total_count FROM staff_members`)

	var args []interface{}
	argCount := 1
	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE name ILIKE $%d OR phone_number ILIKE $%d OR id_number ILIKE $%d", argCount, argCount, argCount))
		args = append(args, "%"+strings.TrimSpace(*searchTerm)+"%")
		argCount++
	}

	limit, offset := pageOffset(page, pageSize)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	var rows []staffMemberRow
	if err := exec.SelectContext(ctx, &rows, queryBuilder.String(), args...); err != nil {
		return nil, 0, translateError(err, "listing staff members")
	}

	staff := make([]models.StaffMember, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		staff = append(staff, row.StaffMember)
		totalCount = row.TotalCount
	}
	return staff, totalCount, nil
}

func (r *staffRepository) DeleteStaffMember(ctx context.Context, exec SQLExecutor, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "deleting staff member")
	}
	return expectAffected(res, fmt.Sprintf("deleting staff member %d", id))
}
