package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accepted payment methods.
const (
	PaymentCash  = "cash"
	PaymentMpesa = "mpesa"
	PaymentCard  = "card"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []string{PaymentCash, PaymentMpesa, PaymentCard}

// SaleTypeRetail marks whole-bottle sales.
const SaleTypeRetail = "retail"

// DrinkSale records a retail sale of sealed bottles.
type DrinkSale struct {
	ID              int64           `json:"id" db:"id"`
	DrinkID         int64           `json:"drink_id" db:"drink_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	SaleType        string          `json:"sale_type" db:"sale_type"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	ReferenceNumber *string         `json:"reference_number,omitempty" db:"reference_number"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	SoldBy          *int64          `json:"sold_by,omitempty" db:"sold_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// TotSale records shots sold from an open bottle. The bottle row may be gone
// once it is finished, so DrinkID is kept alongside it.
type TotSale struct {
	ID              int64           `json:"id" db:"id"`
	OpenBottleID    int64           `json:"open_bottle_id" db:"open_bottle_id"`
	DrinkID         int64           `json:"drink_id" db:"drink_id"`
	ShotQuantity    int             `json:"shot_quantity" db:"shot_quantity"`
	Price           decimal.Decimal `json:"price" db:"price"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	ReferenceNumber *string         `json:"reference_number,omitempty" db:"reference_number"`
	SoldBy          *int64          `json:"sold_by,omitempty" db:"sold_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

// DrinkPurchase records stock bought from a supplier.
type DrinkPurchase struct {
	ID              int64           `json:"id" db:"id"`
	DrinkID         int64           `json:"drink_id" db:"drink_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price" db:"unit_price"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	ReferenceNumber *string         `json:"reference_number,omitempty" db:"reference_number"`
	Supplier        string          `json:"supplier" db:"supplier"`
	RecordedBy      *int64          `json:"recorded_by,omitempty" db:"recorded_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
