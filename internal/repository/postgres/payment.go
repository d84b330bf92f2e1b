package postgres

import (
	"context"
	"time"

	"prestige-rentals-backend/internal/domain"
)

type paymentRepository struct {
	q DBTX
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rental_id, amount, payment_date, payment_method, reference, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING payment_id`
	return r.q.QueryRowContext(ctx, query, p.RentalID, p.Amount, p.PaymentDate,
		p.PaymentMethod, p.Reference, time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	query := `SELECT payment_id, rental_id, amount, payment_date, payment_method, reference, created_on
	          FROM payments WHERE rental_id = $1 ORDER BY payment_date`
	rows, err := r.q.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentalID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.Reference, &p.CreatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) DeleteByRental(ctx context.Context, rentalID int32) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM payments WHERE rental_id = $1`, rentalID)
	return err
}
