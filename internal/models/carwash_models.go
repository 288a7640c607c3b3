package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarwashDateLayout is the display format for income dates.
const CarwashDateLayout = "02-01-2006, 15:04"

// CarwashIncome is one carwash service charged to a customer.
type CarwashIncome struct {
	ID                     int64           `json:"id" db:"id"`
	Customer               string          `json:"customer" db:"customer"`
	StaffID                int64           `json:"staff_id" db:"staff_id"`
	AmountCharged          decimal.Decimal `json:"amount_charged" db:"amount_charged"`
	PaymentMethod          string          `json:"payment_method" db:"payment_method"`
	PaymentReferenceNumber *string         `json:"payment_reference_number,omitempty" db:"payment_reference_number"`
	Service                string          `json:"service" db:"service"`
	Date                   time.Time       `json:"-" db:"date"`
	CreatedAt              time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt              *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

// DisplayDate renders Date in CarwashDateLayout as seen from loc.
// A nil loc means time.Local.
func (i CarwashIncome) DisplayDate(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return i.Date.In(loc).Format(CarwashDateLayout)
}

// CarwashIncomeView is the API form of an income record.
type CarwashIncomeView struct {
	CarwashIncome
	Date string `json:"date"`
}

// View renders the record with its display date.
func (i CarwashIncome) View(loc *time.Location) CarwashIncomeView {
	return CarwashIncomeView{CarwashIncome: i, Date: i.DisplayDate(loc)}
}
