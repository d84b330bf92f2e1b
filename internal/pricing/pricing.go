package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"prestige-rentals-backend/internal/domain"
)

// All monetary math runs on decimal values with two fractional digits.
// Rounding happens once, in Total, using round-half-up.

// CostBreakdown itemizes the price of a rental.
type CostBreakdown struct {
	Days       int             `json:"days"`
	BaseCost   decimal.Decimal `json:"base_cost"`
	AddonsCost decimal.Decimal `json:"addons_cost"`
	Fee        decimal.Decimal `json:"fee"`
	Total      decimal.Decimal `json:"total"`
}

// FeeSchedule holds the two return-fee policies. Only one applies per return
// event: the per-overdue-day late fee when the car comes back after its due
// date, or the flat early-return fee when it comes back before.
type FeeSchedule struct {
	// LateDailyFraction is the share of the daily rate charged per overdue day.
	LateDailyFraction decimal.Decimal
	// EarlyReturnFee is the flat administrative charge for early returns.
	EarlyReturnFee decimal.Decimal
}

// DefaultFeeSchedule mirrors the published fee table: 25% of the daily rate
// per overdue day, $25.00 flat for early returns.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		LateDailyFraction: decimal.NewFromFloat(0.25),
		EarlyReturnFee:    decimal.NewFromFloat(25.00),
	}
}

// RentalDays returns the billable duration in whole days between pickup and
// due/return, rounding partial days up. A same-day rental still bills one day.
func RentalDays(pickup, due time.Time) int {
	hours := due.Sub(pickup).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// BaseCost is the daily rate applied over the billable duration.
func BaseCost(dailyRate decimal.Decimal, days int) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(days)))
}

// AddonsCost sums the fixed prices of the selected addons. Order never
// matters; an empty selection costs nothing.
func AddonsCost(addons []domain.Addon) decimal.Decimal {
	total := decimal.Zero
	for _, a := range addons {
		total = total.Add(a.Price)
	}
	return total
}

// OverdueDays counts whole days the return ran past the scheduled due date.
// Days are counted against the due date, not the pickup date; an on-time or
// early return yields zero.
func OverdueDays(due, returned time.Time) int {
	hours := returned.Sub(due).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 0 {
		return 0
	}
	return days
}

// ReturnFee computes the fee owed at return time. Late returns accrue
// LateDailyFraction of the daily rate per overdue day; early returns pay the
// flat EarlyReturnFee; an on-time return owes nothing.
func (f FeeSchedule) ReturnFee(dailyRate decimal.Decimal, due, returned time.Time) decimal.Decimal {
	overdue := OverdueDays(due, returned)
	if overdue > 0 {
		return dailyRate.Mul(f.LateDailyFraction).Mul(decimal.NewFromInt(int64(overdue)))
	}
	if returned.Before(due) {
		return f.EarlyReturnFee
	}
	return decimal.Zero
}

// Total sums base cost, addons and fee, rounded half-up to cents.
func Total(base, addons, fee decimal.Decimal) decimal.Decimal {
	return base.Add(addons).Add(fee).Round(2)
}

// Quote prices a booking for the requested window before any fees exist.
func Quote(dailyRate decimal.Decimal, pickup, due time.Time, addons []domain.Addon) CostBreakdown {
	days := RentalDays(pickup, due)
	base := BaseCost(dailyRate, days)
	extras := AddonsCost(addons)
	return CostBreakdown{
		Days:       days,
		BaseCost:   base,
		AddonsCost: extras,
		Fee:        decimal.Zero,
		Total:      Total(base, extras, decimal.Zero),
	}
}
