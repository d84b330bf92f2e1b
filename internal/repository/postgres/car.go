package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prestige-rentals-backend/internal/domain"
)

type carRepository struct {
	q DBTX
}

const carColumns = `car_id, make, model, year, daily_rate, hourly_rate, weekly_rate, monthly_rate, license_plate, mileage, status, created_on, updated_on`

func scanCar(row interface{ Scan(dest ...any) error }) (*domain.Car, error) {
	car := &domain.Car{}
	err := row.Scan(&car.ID, &car.Make, &car.Model, &car.Year, &car.DailyRate, &car.HourlyRate,
		&car.WeeklyRate, &car.MonthlyRate, &car.LicensePlate, &car.Mileage, &car.Status,
		&car.CreatedOn, &car.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (make, model, year, daily_rate, hourly_rate, weekly_rate, monthly_rate, license_plate, mileage, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING car_id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query, car.Make, car.Model, car.Year, car.DailyRate,
		car.HourlyRate, car.WeeklyRate, car.MonthlyRate, car.LicensePlate, car.Mileage,
		car.Status, now, now).Scan(&car.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE car_id = $1`
	return scanCar(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate takes a row lock so two concurrent bookings of the same
// car serialize on the car row. Only meaningful inside RunAtomic.
func (r *carRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE car_id = $1 FOR UPDATE`
	return scanCar(r.q.QueryRowContext(ctx, query, id))
}

func (r *carRepository) UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	query := `UPDATE cars SET status = $1, updated_on = $2 WHERE car_id = $3`
	res, err := r.q.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *carRepository) UpdateMileage(ctx context.Context, id int32, mileage int32) error {
	query := `UPDATE cars SET mileage = $1, updated_on = $2 WHERE car_id = $3`
	res, err := r.q.ExecContext(ctx, query, mileage, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *carRepository) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE status = $1 ORDER BY make, model`
	rows, err := r.q.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *car)
	}
	return cars, rows.Err()
}

func (r *carRepository) FleetCounts(ctx context.Context) (map[domain.CarStatus]int32, error) {
	query := `SELECT status, count(*) FROM cars GROUP BY status`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.CarStatus]int32)
	for rows.Next() {
		var status domain.CarStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// requireRow converts a zero-row update into ErrNotFound so callers never
// silently "update" a missing record.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
