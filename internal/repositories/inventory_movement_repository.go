package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospitality_backend/internal/models"
)

// InventoryMovementRepository defines the interface for the stock movement audit trail.
type InventoryMovementRepository interface {
	CreateMovement(ctx context.Context, exec SQLExecutor, movement *models.StockMovement) (int64, error)
	GetMovements(ctx context.Context, exec SQLExecutor, filters models.StockMovementFilters) ([]models.StockMovement, int, error)
}

type inventoryMovementRepository struct{}

// NewInventoryMovementRepository creates a new instance of InventoryMovementRepository.
func NewInventoryMovementRepository() InventoryMovementRepository {
	return &inventoryMovementRepository{}
}

func (r *inventoryMovementRepository) CreateMovement(ctx context.Context, exec SQLExecutor, movement *models.StockMovement) (int64, error) {
	query := `INSERT INTO stock_movements (drink_id, staff_id, movement_type, quantity_changed, reason, movement_date)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	if movement.MovementDate.IsZero() {
		movement.MovementDate = time.Now()
	}

	err := exec.QueryRowxContext(ctx, query,
		movement.DrinkID, movement.StaffID, movement.MovementType, movement.QuantityChanged,
		movement.Reason, movement.MovementDate,
	).Scan(&movement.ID)
	if err != nil {
		return 0, translateError(err, "creating stock movement")
	}
	return movement.ID, nil
}

type stockMovementRow struct {
	models.StockMovement
	TotalCount int `db:"total_count"`
}

func (r *inventoryMovementRepository) GetMovements(ctx context.Context, exec SQLExecutor, filters models.StockMovementFilters) ([]models.StockMovement, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    sm.id, sm.drink_id, sm.staff_id, sm.movement_type, sm.quantity_changed,
	    sm.reason, sm.movement_date, d.name AS drink_name,
	    COUNT(*) OVER() AS total_count
	  FROM stock_movements sm
	  JOIN drinks d ON sm.drink_id = d.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.DrinkID != nil {
		conditions = append(conditions, fmt.Sprintf("sm.drink_id = $%d", argCount))
		args = append(args, *filters.DrinkID)
		argCount++
	}
	if filters.MovementType != nil && *filters.MovementType != "" {
		conditions = append(conditions, fmt.Sprintf("sm.movement_type = $%d", argCount))
		args = append(args, *filters.MovementType)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	limit, offset := pageOffset(filters.Page, filters.PageSize)
	queryBuilder.WriteString(" ORDER BY sm.movement_date DESC, sm.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	var rows []stockMovementRow
	if err := exec.SelectContext(ctx, &rows, queryBuilder.String(), args...); err != nil {
		return nil, 0, translateError(err, "getting stock movements")
	}

	movements := make([]models.StockMovement, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		movements = append(movements, row.StockMovement)
		totalCount = row.TotalCount
	}
	return movements, totalCount, nil
}
