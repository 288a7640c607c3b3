package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospitality_backend/internal/models"

	"github.com/shopspring/decimal"
)

// DrinkRepository defines the interface for drink catalog and stock operations.
type DrinkRepository interface {
	CreateDrink(ctx context.Context, exec SQLExecutor, drink *models.Drink) (*models.Drink, error)
	GetDrinkByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Drink, error)
	// GetDrinkForUpdate reads the drink and row-locks it until the transaction ends.
	GetDrinkForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.Drink, error)
	ListDrinks(ctx context.Context, exec SQLExecutor) ([]models.Drink, error)
	UpdateDrink(ctx context.Context, exec SQLExecutor, drink *models.Drink) error
	DeleteDrink(ctx context.Context, exec SQLExecutor, id int64) error
	// UpdateStock adds delta to stock unless the result would be negative,
	// in which case ErrGuardFailed is returned. It returns the new stock.
	UpdateStock(ctx context.Context, exec SQLExecutor, id int64, delta int) (int, error)
	UpdatePurchasePrice(ctx context.Context, exec SQLExecutor, id int64, price decimal.Decimal) error
}

type drinkRepository struct{}

// NewDrinkRepository creates a new instance of DrinkRepository.
func NewDrinkRepository() DrinkRepository {
	return &drinkRepository{}
}

const drinkColumns = `id, name, drink_type, stock, purchase_price, volume, markup, shot_price, shot_quantity, created_at, updated_at`

func (r *drinkRepository) CreateDrink(ctx context.Context, exec SQLExecutor, drink *models.Drink) (*models.Drink, error) {
	query := `INSERT INTO drinks (name, drink_type, stock, purchase_price, volume, markup, shot_price, shot_quantity, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	drink.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query,
		drink.Name, drink.DrinkType, drink.Stock, drink.PurchasePrice, drink.Volume,
		drink.Markup, drink.ShotPrice, drink.ShotQuantity, drink.CreatedAt,
	).Scan(&drink.ID)
	if err != nil {
		return nil, translateError(err, "creating drink")
	}
	return drink, nil
}

func (r *drinkRepository) GetDrinkByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Drink, error) {
	var drink models.Drink
	query := `SELECT ` + drinkColumns + ` FROM drinks WHERE id = $1`
	if err := exec.GetContext(ctx, &drink, query, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("getting drink %d", id))
	}
	return &drink, nil
}

func (r *drinkRepository) GetDrinkForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.Drink, error) {
	var drink models.Drink
	query := `SELECT ` + drinkColumns + ` FROM drinks WHERE id = $1 FOR UPDATE`
	if err := exec.GetContext(ctx, &drink, query, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("locking drink %d", id))
	}
	return &drink, nil
}

func (r *drinkRepository) ListDrinks(ctx context.Context, exec SQLExecutor) ([]models.Drink, error) {
	drinks := []models.Drink{}
	query := `SELECT ` + drinkColumns + ` FROM drinks ORDER BY name ASC, id ASC`
	if err := exec.SelectContext(ctx, &drinks, query); err != nil {
		return nil, translateError(err, "listing drinks")
	}
	return drinks, nil
}

func (r *drinkRepository) UpdateDrink(ctx context.Context, exec SQLExecutor, drink *models.Drink) error {
	query := `UPDATE drinks SET name = $1, drink_type = $2, stock = $3, purchase_price = $4, volume = $5,
	              markup = $6, shot_price = $7, shot_quantity = $8, updated_at = $9
	          WHERE id = $10`

	now := time.Now()
	res, err := exec.ExecContext(ctx, query,
		drink.Name, drink.DrinkType, drink.Stock, drink.PurchasePrice, drink.Volume,
		drink.Markup, drink.ShotPrice, drink.ShotQuantity, now, drink.ID,
	)
	if err != nil {
		return translateError(err, "updating drink")
	}
	if err := expectAffected(res, fmt.Sprintf("updating drink %d", drink.ID)); err != nil {
		return err
	}
	drink.UpdatedAt = &now
	return nil
}

func (r *drinkRepository) DeleteDrink(ctx context.Context, exec SQLExecutor, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM drinks WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "deleting drink")
	}
	return expectAffected(res, fmt.Sprintf("deleting drink %d", id))
}

func (r *drinkRepository) UpdateStock(ctx context.Context, exec SQLExecutor, id int64, delta int) (int, error) {
	query := `UPDATE drinks SET stock = stock + $1, updated_at = $2
	          WHERE id = $3 AND stock + $1 >= 0
	          RETURNING stock`

	var stock int
	err := exec.QueryRowxContext(ctx, query, delta, time.Now(), id).Scan(&stock)
	if err != nil {
		err = translateError(err, fmt.Sprintf("changing stock of drink %d by %d", id, delta))
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("%w: stock of drink %d cannot change by %d", ErrGuardFailed, id, delta)
		}
		return 0, err
	}
	return stock, nil
}

func (r *drinkRepository) UpdatePurchasePrice(ctx context.Context, exec SQLExecutor, id int64, price decimal.Decimal) error {
	res, err := exec.ExecContext(ctx, `UPDATE drinks SET purchase_price = $1, updated_at = $2 WHERE id = $3`, price, time.Now(), id)
	if err != nil {
		return translateError(err, "updating purchase price")
	}
	return expectAffected(res, fmt.Sprintf("updating purchase price of drink %d", id))
}
