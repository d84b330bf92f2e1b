package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            int32           `json:"id"`
	RentalID      int32           `json:"rental_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference"`
	CreatedOn     time.Time       `json:"created_on"`
}
