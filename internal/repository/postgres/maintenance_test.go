package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"prestige-rentals-backend/internal/domain"
)

func TestMaintenanceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &maintenanceRepository{q: db}
	ctx := context.Background()

	rec := &domain.Maintenance{
		CarID:            2,
		ServiceDate:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ServiceType:      "Oil Change",
		Notes:            "scheduled service",
		MileageAtService: 42000,
	}

	mock.ExpectQuery("INSERT INTO maintenance").
		WithArgs(rec.CarID, rec.ServiceDate, rec.ServiceType, rec.Notes, rec.Cost,
			rec.MileageAtService, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"maintenance_id"}).AddRow(5))

	err = repo.Create(ctx, rec)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), rec.ID)
}

func TestMaintenanceRepository_Complete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &maintenanceRepository{q: db}
	ctx := context.Background()
	completedOn := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE maintenance SET completion_date").
			WithArgs(completedOn, int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Complete(ctx, 5, completedOn))
	})

	t.Run("Missing record", func(t *testing.T) {
		mock.ExpectExec("UPDATE maintenance SET completion_date").
			WithArgs(completedOn, int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Complete(ctx, 404, completedOn), domain.ErrNotFound)
	})
}
