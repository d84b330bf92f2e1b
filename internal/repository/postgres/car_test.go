package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"prestige-rentals-backend/internal/domain"
)

func carRows(id int32, status domain.CarStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"car_id", "make", "model", "year", "daily_rate", "hourly_rate",
		"weekly_rate", "monthly_rate", "license_plate", "mileage", "status",
		"created_on", "updated_on",
	}).AddRow(id, "Toyota", "Camry", 2024, "50.00", "8.00", "300.00", "1100.00",
		"ABC-123", 42000, string(status), time.Now(), time.Now())
}

func TestCarRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &carRepository{q: db}
	ctx := context.Background()

	t.Run("Locks the row", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cars WHERE car_id = \\$1 FOR UPDATE").
			WithArgs(int32(2)).
			WillReturnRows(carRows(2, domain.CarStatusAvailable))

		car, err := repo.GetByIDForUpdate(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), car.ID)
		assert.Equal(t, domain.CarStatusAvailable, car.Status)
		assert.Equal(t, "50.00", car.DailyRate.StringFixed(2))
	})

	t.Run("Missing car", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cars WHERE car_id = \\$1 FOR UPDATE").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"car_id"}))

		_, err := repo.GetByIDForUpdate(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCarRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &carRepository{q: db}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(domain.CarStatusRented, sqlmock.AnyArg(), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, 2, domain.CarStatusRented))
	})

	t.Run("Missing car", func(t *testing.T) {
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(domain.CarStatusRented, sqlmock.AnyArg(), int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, 404, domain.CarStatusRented), domain.ErrNotFound)
	})
}

func TestCarRepository_FleetCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &carRepository{q: db}
	ctx := context.Background()

	mock.ExpectQuery("SELECT status, count\\(\\*\\) FROM cars GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Available", 3).
			AddRow("Rented", 2).
			AddRow("Maintenance", 1))

	counts, err := repo.FleetCounts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), counts[domain.CarStatusAvailable])
	assert.Equal(t, int32(2), counts[domain.CarStatusRented])
	assert.Equal(t, int32(1), counts[domain.CarStatusMaintenance])
}
