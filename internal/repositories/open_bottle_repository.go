package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospitality_backend/internal/models"
)

// OpenBottleRepository defines the interface for open bottle operations.
type OpenBottleRepository interface {
	CreateOpenBottle(ctx context.Context, exec SQLExecutor, bottle *models.OpenBottle) (*models.OpenBottle, error)
	GetOpenBottleForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.OpenBottle, error)
	ListOpenBottles(ctx context.Context, exec SQLExecutor) ([]models.OpenBottleListing, error)
	// UpdateShotsRemaining adds delta unless the result would be negative
	// (ErrGuardFailed). It returns the new shot count.
	UpdateShotsRemaining(ctx context.Context, exec SQLExecutor, id int64, delta int) (int, error)
	DeleteOpenBottle(ctx context.Context, exec SQLExecutor, id int64) error
}

type openBottleRepository struct{}

// NewOpenBottleRepository creates a new instance of OpenBottleRepository.
func NewOpenBottleRepository() OpenBottleRepository {
	return &openBottleRepository{}
}

func (r *openBottleRepository) CreateOpenBottle(ctx context.Context, exec SQLExecutor, bottle *models.OpenBottle) (*models.OpenBottle, error) {
	query := `INSERT INTO open_bottles (drink_id, shots_remaining, opened_by, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	bottle.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query, bottle.DrinkID, bottle.ShotsRemaining, bottle.OpenedBy, bottle.CreatedAt).Scan(&bottle.ID)
	if err != nil {
		return nil, translateError(err, "creating open bottle")
	}
	return bottle, nil
}

func (r *openBottleRepository) GetOpenBottleForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.OpenBottle, error) {
	var bottle models.OpenBottle
	query := `SELECT id, drink_id, shots_remaining, opened_by, created_at FROM open_bottles WHERE id = $1 FOR UPDATE`
	if err := exec.GetContext(ctx, &bottle, query, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("locking open bottle %d", id))
	}
	return &bottle, nil
}

func (r *openBottleRepository) ListOpenBottles(ctx context.Context, exec SQLExecutor) ([]models.OpenBottleListing, error) {
	bottles := []models.OpenBottleListing{}
	query := `SELECT ob.id, ob.drink_id, d.name, ob.shots_remaining, d.shot_price
	          FROM open_bottles ob
	          JOIN drinks d ON ob.drink_id = d.id
	          ORDER BY ob.id ASC`
	if err := exec.SelectContext(ctx, &bottles, query); err != nil {
		return nil, translateError(err, "listing open bottles")
	}
	return bottles, nil
}

func (r *openBottleRepository) UpdateShotsRemaining(ctx context.Context, exec SQLExecutor, id int64, delta int) (int, error) {
	query := `UPDATE open_bottles SET shots_remaining = shots_remaining + $1
	          WHERE id = $2 AND shots_remaining + $1 >= 0
	          RETURNING shots_remaining`

	var remaining int
	err := exec.QueryRowxContext(ctx, query, delta, id).Scan(&remaining)
	if err != nil {
		err = translateError(err, fmt.Sprintf("changing shots of bottle %d by %d", id, delta))
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("%w: shots of bottle %d cannot change by %d", ErrGuardFailed, id, delta)
		}
		return 0, err
	}
	return remaining, nil
}

func (r *openBottleRepository) DeleteOpenBottle(ctx context.Context, exec SQLExecutor, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM open_bottles WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "deleting open bottle")
	}
	return expectAffected(res, fmt.Sprintf("deleting open bottle %d", id))
}
