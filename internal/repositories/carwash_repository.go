package repositories

import (
	"context"
	"fmt"
	"time"

	"hospitality_backend/internal/models"
)

// CarwashRepository defines the interface for carwash income records.
type CarwashRepository interface {
	CreateIncome(ctx context.Context, exec SQLExecutor, income *models.CarwashIncome) (*models.CarwashIncome, error)
	GetIncomeByID(ctx context.Context, exec SQLExecutor, id int64) (*models.CarwashIncome, error)
	UpdateIncome(ctx context.Context, exec SQLExecutor, income *models.CarwashIncome) error
	DeleteIncome(ctx context.Context, exec SQLExecutor, id int64) error
	ListIncome(ctx context.Context, exec SQLExecutor, page, pageSize int) ([]models.CarwashIncome, int, error)
}

type carwashRepository struct{}

// NewCarwashRepository creates a new instance of CarwashRepository.
func NewCarwashRepository() CarwashRepository {
	return &carwashRepository{}
}

const incomeColumns = `id, customer, staff_id, amount_charged, payment_method, payment_reference_number, service, date, created_at, updated_at`

func (r *carwashRepository) CreateIncome(ctx context.Context, exec SQLExecutor, income *models.CarwashIncome) (*models.CarwashIncome, error) {
	query := `INSERT INTO carwash_income (customer, staff_id, amount_charged, payment_method, payment_reference_number, service, date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	income.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query,
		income.Customer, income.StaffID, income.AmountCharged, income.PaymentMethod,
		income.PaymentReferenceNumber, income.Service, income.Date, income.CreatedAt,
	).Scan(&income.ID)
	if err != nil {
		return nil, translateError(err, "creating carwash income")
	}
	return income, nil
}

// GetIncomeByID reads and row-locks one income record.
func (r *carwashRepository) GetIncomeByID(ctx context.Context, exec SQLExecutor, id int64) (*models.CarwashIncome, error) {
	var income models.CarwashIncome
	query := `SELECT ` + incomeColumns + ` FROM carwash_income WHERE id = $1 FOR UPDATE`
	if err := exec.GetContext(ctx, &income, query, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("getting carwash income %d", id))
	}
	return &income, nil
}

func (r *carwashRepository) UpdateIncome(ctx context.Context, exec SQLExecutor, income *models.CarwashIncome) error {
	query := `UPDATE carwash_income SET customer = $1, staff_id = $2, amount_charged = $3, payment_method = $4,
	              payment_reference_number = $5, service = $6, date = $7, updated_at = $8
	          WHERE id = $9`

	now := time.Now()
	res, err := exec.ExecContext(ctx, query,
		income.Customer, income.StaffID, income.AmountCharged, income.PaymentMethod,
		income.PaymentReferenceNumber, income.Service, income.Date, now, income.ID,
	)
	if err != nil {
		return translateError(err, "updating carwash income")
	}
	if err := expectAffected(res, fmt.Sprintf("updating carwash income %d", income.ID)); err != nil {
		return err
	}
	income.UpdatedAt = &now
	return nil
}

func (r *carwashRepository) DeleteIncome(ctx context.Context, exec SQLExecutor, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM carwash_income WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "deleting carwash income")
	}
	return expectAffected(res, fmt.Sprintf("deleting carwash income %d", id))
}

type carwashIncomeRow struct {
	models.CarwashIncome
	TotalCount int `db:"total_count"`
}

func (r *carwashRepository) ListIncome(ctx context.Context, exec SQLExecutor, page, pageSize int) ([]models.CarwashIncome, int, error) {
	limit, offset := pageOffset(page, pageSize)
	query := `SELECT ` + incomeColumns + `, COUNT(*) OVER() AS total_count
	          FROM carwash_income
	          ORDER BY date DESC, id DESC
	          LIMIT $1 OFFSET $2`

	var rows []carwashIncomeRow
	if err := exec.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, 0, translateError(err, "listing carwash income")
	}

	income := make([]models.CarwashIncome, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		income = append(income, row.CarwashIncome)
		totalCount = row.TotalCount
	}
	return income, totalCount, nil
}
