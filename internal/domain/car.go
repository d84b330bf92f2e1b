package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "Available"
	CarStatusRented      CarStatus = "Rented"
	CarStatusMaintenance CarStatus = "Maintenance"
)

// CanTransitionTo reports whether the fleet state machine allows moving a
// car from its current status to next. Rented cars may only come back to
// Available (on return); Maintenance must complete before anything else.
func (s CarStatus) CanTransitionTo(next CarStatus) bool {
	switch s {
	case CarStatusAvailable:
		return next == CarStatusRented || next == CarStatusMaintenance
	case CarStatusRented:
		return next == CarStatusAvailable
	case CarStatusMaintenance:
		return next == CarStatusAvailable
	default:
		return false
	}
}

type Car struct {
	ID           int32           `json:"id"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int32           `json:"year"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	WeeklyRate   decimal.Decimal `json:"weekly_rate"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
	LicensePlate string          `json:"license_plate"`
	Mileage      int32           `json:"mileage"`
	Status       CarStatus       `json:"status"`
	CreatedOn    time.Time       `json:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on"`
}
