package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"prestige-rentals-backend/internal/domain"
)

type rentalRepository struct {
	q DBTX
}

const rentalColumns = `rental_id, customer_id, car_id, pickup_date, due_date, return_date, total_cost, late_fee, created_on, updated_on`

func scanRental(row interface{ Scan(dest ...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.CustomerID, &rt.CarID, &rt.PickupDate, &rt.DueDate,
		&rt.ReturnDate, &rt.TotalCost, &rt.LateFee, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (customer_id, car_id, pickup_date, due_date, total_cost, late_fee, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING rental_id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query, rt.CustomerID, rt.CarID, rt.PickupDate, rt.DueDate,
		rt.TotalCost, rt.LateFee, now, now).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE rental_id = $1`
	return scanRental(r.q.QueryRowContext(ctx, query, id))
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE rental_id = $1 FOR UPDATE`
	return scanRental(r.q.QueryRowContext(ctx, query, id))
}

func (r *rentalRepository) Finalize(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET return_date = $1, total_cost = $2, late_fee = $3, updated_on = $4 WHERE rental_id = $5`
	res, err := r.q.ExecContext(ctx, query, rt.ReturnDate, rt.TotalCost, rt.LateFee, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM rentals WHERE rental_id = $1`, id)
	if err != nil {
		return translateConstraint(err)
	}
	return requireRow(res)
}

// HasOverlappingRental implements the half-open interval test
// existing.pickup < requested.due AND existing.due > requested.pickup,
// restricted to active rentals. An active rental with no due date blocks
// every future window.
func (r *rentalRepository) HasOverlappingRental(ctx context.Context, carID int32, pickup, due time.Time) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM rentals
	            WHERE car_id = $1 AND return_date IS NULL
	              AND pickup_date < $3
	              AND COALESCE(due_date, DATE '9999-12-31') > $2)`
	var exists bool
	err := r.q.QueryRowContext(ctx, query, carID, pickup, due).Scan(&exists)
	return exists, err
}

func (r *rentalRepository) GetActiveByCar(ctx context.Context, carID int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE car_id = $1 AND return_date IS NULL`
	return scanRental(r.q.QueryRowContext(ctx, query, carID))
}

func (r *rentalRepository) GetActiveByCustomer(ctx context.Context, customerID int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE customer_id = $1 AND return_date IS NULL
	          ORDER BY pickup_date DESC LIMIT 1`
	return scanRental(r.q.QueryRowContext(ctx, query, customerID))
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Rental, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM rentals WHERE customer_id = $1`
	if err := r.q.QueryRowContext(ctx, countQuery, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1
	          ORDER BY pickup_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.QueryContext(ctx, query, customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE return_date IS NULL AND due_date IS NOT NULL AND due_date < $1
	          ORDER BY due_date`
	rows, err := r.q.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) RealizedRevenue(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_cost + late_fee), 0) FROM rentals WHERE return_date IS NOT NULL`
	var revenue decimal.Decimal
	err := r.q.QueryRowContext(ctx, query).Scan(&revenue)
	return revenue, err
}
