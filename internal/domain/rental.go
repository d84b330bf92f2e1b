package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Rental struct {
	ID         int32      `json:"id"`
	CustomerID int32      `json:"customer_id"`
	CarID      int32      `json:"car_id"`
	PickupDate time.Time  `json:"pickup_date"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	// Cost fields are finalized by the booking transaction (total) and the
	// return transaction (late fee).
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"`
	LateFee   decimal.Decimal  `json:"late_fee"`
	CreatedOn time.Time        `json:"created_on"`
	UpdatedOn time.Time        `json:"updated_on"`
}

// IsActive reports whether the rental is still open: the car is out and this
// rental row is the one holding the car's Rented status.
func (r *Rental) IsActive() bool {
	return r.ReturnDate == nil
}

// Addon is a bookable extra (GPS, child seat) with a fixed price.
type Addon struct {
	ID    int32           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// RentalAddon joins a rental to an addon. Price is snapshotted from the
// addon at booking time; later addon price changes never affect past rentals.
type RentalAddon struct {
	RentalID int32           `json:"rental_id"`
	AddonID  int32           `json:"addon_id"`
	Price    decimal.Decimal `json:"price"`
}
