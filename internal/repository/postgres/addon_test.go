package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"prestige-rentals-backend/internal/domain"
)

func TestAddonRepository_GetByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &addonRepository{q: db}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT addon_id, name, price FROM addons WHERE addon_id = ANY").
			WithArgs(pq.Array([]int32{1, 2})).
			WillReturnRows(sqlmock.NewRows([]string{"addon_id", "name", "price"}).
				AddRow(1, "GPS Navigation", "10.00").
				AddRow(2, "Child Seat", "15.00"))

		addons, err := repo.GetByIDs(ctx, []int32{1, 2})
		assert.NoError(t, err)
		assert.Len(t, addons, 2)
		assert.Equal(t, "10.00", addons[0].Price.StringFixed(2))
	})

	t.Run("Unknown id in selection", func(t *testing.T) {
		mock.ExpectQuery("SELECT addon_id, name, price FROM addons WHERE addon_id = ANY").
			WithArgs(pq.Array([]int32{1, 999})).
			WillReturnRows(sqlmock.NewRows([]string{"addon_id", "name", "price"}).
				AddRow(1, "GPS Navigation", "10.00"))

		_, err := repo.GetByIDs(ctx, []int32{1, 999})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Empty selection hits no query", func(t *testing.T) {
		addons, err := repo.GetByIDs(ctx, nil)
		assert.NoError(t, err)
		assert.Nil(t, addons)
	})
}

func TestAddonRepository_AttachToRental(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &addonRepository{q: db}
	ctx := context.Background()

	addons := []domain.Addon{
		{ID: 1, Name: "GPS Navigation", Price: decimal.NewFromFloat(10.00)},
		{ID: 2, Name: "Child Seat", Price: decimal.NewFromFloat(15.00)},
	}

	mock.ExpectExec("INSERT INTO rental_addons").
		WithArgs(int32(99), int32(1), addons[0].Price).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO rental_addons").
		WithArgs(int32(99), int32(2), addons[1].Price).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AttachToRental(ctx, 99, addons)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
