package repositories

import (
	"context"
	"fmt"
	"time"

	"hospitality_backend/internal/models"
)

// SalesRepository defines the interface for retail and tot sale records.
type SalesRepository interface {
	CreateDrinkSale(ctx context.Context, exec SQLExecutor, sale *models.DrinkSale) (*models.DrinkSale, error)
	CreateTotSale(ctx context.Context, exec SQLExecutor, sale *models.TotSale) (*models.TotSale, error)
	GetTotSaleForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.TotSale, error)
	UpdateTotSale(ctx context.Context, exec SQLExecutor, sale *models.TotSale) error
}

type salesRepository struct{}

// NewSalesRepository creates a new instance of SalesRepository.
func NewSalesRepository() SalesRepository {
	return &salesRepository{}
}

func (r *salesRepository) CreateDrinkSale(ctx context.Context, exec SQLExecutor, sale *models.DrinkSale) (*models.DrinkSale, error) {
	query := `INSERT INTO drink_sales (drink_id, quantity, sale_type, payment_method, reference_number, amount, sold_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	sale.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query,
		sale.DrinkID, sale.Quantity, sale.SaleType, sale.PaymentMethod,
		sale.ReferenceNumber, sale.Amount, sale.SoldBy, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return nil, translateError(err, "creating drink sale")
	}
	return sale, nil
}

func (r *salesRepository) CreateTotSale(ctx context.Context, exec SQLExecutor, sale *models.TotSale) (*models.TotSale, error) {
	query := `INSERT INTO tot_sales (open_bottle_id, drink_id, shot_quantity, price, payment_method, reference_number, sold_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	sale.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query,
		sale.OpenBottleID, sale.DrinkID, sale.ShotQuantity, sale.Price, sale.PaymentMethod,
		sale.ReferenceNumber, sale.SoldBy, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return nil, translateError(err, "creating tot sale")
	}
	return sale, nil
}

func (r *salesRepository) GetTotSaleForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.TotSale, error) {
	var sale models.TotSale
	query := `SELECT id, open_bottle_id, drink_id, shot_quantity, price, payment_method, reference_number, sold_by, created_at, updated_at
	          FROM tot_sales WHERE id = $1 FOR UPDATE`
	if err := exec.GetContext(ctx, &sale, query, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("locking tot sale %d", id))
	}
	return &sale, nil
}

func (r *salesRepository) UpdateTotSale(ctx context.Context, exec SQLExecutor, sale *models.TotSale) error {
	query := `UPDATE tot_sales SET open_bottle_id = $1, drink_id = $2, shot_quantity = $3, price = $4,
	              payment_method = $5, reference_number = $6, updated_at = $7
	          WHERE id = $8`

	now := time.Now()
	res, err := exec.ExecContext(ctx, query,
		sale.OpenBottleID, sale.DrinkID, sale.ShotQuantity, sale.Price,
		sale.PaymentMethod, sale.ReferenceNumber, now, sale.ID,
	)
	if err != nil {
		return translateError(err, "updating tot sale")
	}
	if err := expectAffected(res, fmt.Sprintf("updating tot sale %d", sale.ID)); err != nil {
		return err
	}
	sale.UpdatedAt = &now
	return nil
}
