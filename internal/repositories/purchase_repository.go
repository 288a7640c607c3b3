package repositories

import (
	"context"
	"time"

	"hospitality_backend/internal/models"
)

// PurchaseRepository defines the interface for stock purchase receipts.
type PurchaseRepository interface {
	CreateDrinkPurchase(ctx context.Context, exec SQLExecutor, purchase *models.DrinkPurchase) (*models.DrinkPurchase, error)
}

type purchaseRepository struct{}

// NewPurchaseRepository creates a new instance of PurchaseRepository.
func NewPurchaseRepository() PurchaseRepository {
	return &purchaseRepository{}
}

func (r *purchaseRepository) CreateDrinkPurchase(ctx context.Context, exec SQLExecutor, purchase *models.DrinkPurchase) (*models.DrinkPurchase, error) {
	query := `INSERT INTO drink_purchases (drink_id, quantity, unit_price, payment_method, reference_number, supplier, recorded_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	purchase.CreatedAt = time.Now()
	err := exec.QueryRowxContext(ctx, query,
		purchase.DrinkID, purchase.Quantity, purchase.UnitPrice, purchase.PaymentMethod,
		purchase.ReferenceNumber, purchase.Supplier, purchase.RecordedBy, purchase.CreatedAt,
	).Scan(&purchase.ID)
	if err != nil {
		return nil, translateError(err, "creating drink purchase")
	}
	return purchase, nil
}
