package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Maintenance is a service record for a car. While CompletionDate is NULL the
// record is open and the car is held in Maintenance status.
type Maintenance struct {
	ID               int32            `json:"id"`
	CarID            int32            `json:"car_id"`
	ServiceDate      time.Time        `json:"service_date"`
	CompletionDate   *time.Time       `json:"completion_date,omitempty"`
	ServiceType      string           `json:"service_type"`
	Notes            string           `json:"notes"`
	Cost             *decimal.Decimal `json:"cost,omitempty"`
	MileageAtService int32            `json:"mileage_at_service"`
	CreatedOn        time.Time        `json:"created_on"`
}

func (m *Maintenance) IsOpen() bool {
	return m.CompletionDate == nil
}
