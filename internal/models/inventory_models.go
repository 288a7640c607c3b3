package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money goes out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Drink is a catalog entry counted in sealed bottles.
type Drink struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	DrinkType     string          `json:"category" db:"drink_type"`
	Stock         int             `json:"stock" db:"stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	Volume        string          `json:"volume" db:"volume"`
	Markup        decimal.Decimal `json:"markup" db:"markup"`
	ShotPrice     decimal.Decimal `json:"shot_price" db:"shot_price"`
	ShotQuantity  int             `json:"shot_quantity" db:"shot_quantity"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

// OpenBottle is a bottle taken out of sealed stock and sold by the shot.
type OpenBottle struct {
	ID             int64     `json:"id" db:"id"`
	DrinkID        int64     `json:"drink_id" db:"drink_id"`
	ShotsRemaining int       `json:"shots_remaining" db:"shots_remaining"`
	OpenedBy       *int64    `json:"opened_by,omitempty" db:"opened_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// OpenBottleListing joins an open bottle with its drink.
type OpenBottleListing struct {
	ID             int64           `json:"id" db:"id"`
	DrinkID        int64           `json:"drink_id" db:"drink_id"`
	Name           string          `json:"name" db:"name"`
	ShotsRemaining int             `json:"shots_remaining" db:"shots_remaining"`
	ShotPrice      decimal.Decimal `json:"shot_price" db:"shot_price"`
}

// Stock movement types.
const (
	MovementTypeInitialStock = "initial_stock"
	MovementTypeAdjustment   = "adjustment"
	MovementTypeSale         = "sale"
	MovementTypeOpenBottle   = "open_bottle"
	MovementTypePurchase     = "purchase"
)

// StockMovement represents a change in sealed stock for a drink
type StockMovement struct {
	ID              int64     `json:"id" db:"id"`
	DrinkID         int64     `json:"drink_id" db:"drink_id"`
	StaffID         *int64    `json:"staff_id,omitempty" db:"staff_id"`
	MovementType    string    `json:"movement_type" db:"movement_type"`
	QuantityChanged int       `json:"quantity_changed" db:"quantity_changed"`
	Reason          *string   `json:"reason,omitempty" db:"reason"`
	MovementDate    time.Time `json:"movement_date" db:"movement_date"`
	DrinkName       string    `json:"drink_name,omitempty" db:"drink_name"`
}

// StockMovementFilters narrows a stock movement listing.
type StockMovementFilters struct {
	DrinkID      *int64
	MovementType *string
	Page         int
	PageSize     int
}

// DrinkListing is a catalog row with its computed prices.
type DrinkListing struct {
	Drink
	SellingPrice decimal.Decimal `json:"selling_price"` // purchase_price × markup, VAT exclusive
	RetailPrice  decimal.Decimal `json:"retail_price"`  // unit price charged on retail sale
}
