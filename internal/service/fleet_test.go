package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/security"
)

func newTestFleetService(store *stubStore) *fleetService {
	return NewFleetService(store, security.NewGuard()).(*fleetService)
}

func TestFleetService_AddCar(t *testing.T) {
	ctx := context.Background()
	employee := domain.Principal{ID: 1, Role: domain.RoleEmployee}

	t.Run("Success defaults status to available", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		store.cars.On("Create", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)

		car := &domain.Car{Make: "Honda", Model: "Civic", DailyRate: decimal.NewFromFloat(45.00), LicensePlate: "ABC-123"}
		err := svc.AddCar(ctx, employee, car)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusAvailable, car.Status)
	})

	t.Run("Customer rejected", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		customer := domain.Principal{ID: 7, Role: domain.RoleCustomer}
		err := svc.AddCar(ctx, customer, &domain.Car{})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		store.cars.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestFleetService_ScheduleMaintenance(t *testing.T) {
	ctx := context.Background()
	employee := domain.Principal{ID: 1, Role: domain.RoleEmployee}
	serviceDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	input := ScheduleMaintenanceInput{
		CarID:       2,
		ServiceDate: serviceDate,
		ServiceType: "Oil Change",
		Mileage:     42000,
	}

	t.Run("Success", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		store.cars.On("GetByIDForUpdate", ctx, int32(2)).Return(availableCar(), nil)
		store.maintenance.On("Create", ctx, mock.AnythingOfType("*domain.Maintenance")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Maintenance).ID = 5
			}).Return(nil)
		store.cars.On("UpdateMileage", ctx, int32(2), int32(42000)).Return(nil)
		store.cars.On("UpdateStatus", ctx, int32(2), domain.CarStatusMaintenance).Return(nil)

		record, status, err := svc.ScheduleMaintenance(ctx, employee, input)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), record.ID)
		assert.Equal(t, domain.CarStatusMaintenance, status)
	})

	t.Run("Rented car rejected", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		rented := availableCar()
		rented.Status = domain.CarStatusRented
		store.cars.On("GetByIDForUpdate", ctx, int32(2)).Return(rented, nil)

		_, _, err := svc.ScheduleMaintenance(ctx, employee, input)
		assert.ErrorIs(t, err, domain.ErrCarHasActiveRental)
		store.maintenance.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		store.cars.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Zero mileage skips mileage update", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		noMileage := input
		noMileage.Mileage = 0

		store.cars.On("GetByIDForUpdate", ctx, int32(2)).Return(availableCar(), nil)
		store.maintenance.On("Create", ctx, mock.AnythingOfType("*domain.Maintenance")).Return(nil)
		store.cars.On("UpdateStatus", ctx, int32(2), domain.CarStatusMaintenance).Return(nil)

		_, _, err := svc.ScheduleMaintenance(ctx, employee, noMileage)
		assert.NoError(t, err)
		store.cars.AssertNotCalled(t, "UpdateMileage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFleetService_CompleteMaintenance(t *testing.T) {
	ctx := context.Background()
	employee := domain.Principal{ID: 1, Role: domain.RoleEmployee}

	t.Run("Success returns car to service", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)
		svc.now = func() time.Time { return time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC) }

		inMaintenance := availableCar()
		inMaintenance.Status = domain.CarStatusMaintenance

		store.maintenance.On("GetByID", ctx, int32(5)).Return(&domain.Maintenance{ID: 5, CarID: 2}, nil)
		store.cars.On("GetByIDForUpdate", ctx, int32(2)).Return(inMaintenance, nil)
		store.maintenance.On("Complete", ctx, int32(5), mock.AnythingOfType("time.Time")).Return(nil)
		store.cars.On("UpdateStatus", ctx, int32(2), domain.CarStatusAvailable).Return(nil)

		status, err := svc.CompleteMaintenance(ctx, employee, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusAvailable, status)
	})

	t.Run("Already completed", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		done := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
		store.maintenance.On("GetByID", ctx, int32(5)).
			Return(&domain.Maintenance{ID: 5, CarID: 2, CompletionDate: &done}, nil)

		_, err := svc.CompleteMaintenance(ctx, employee, 5)
		assert.ErrorIs(t, err, domain.ErrMaintenanceNotOpen)
		store.cars.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFleetService_FleetMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		store.cars.On("FleetCounts", ctx).Return(map[domain.CarStatus]int32{
			domain.CarStatusAvailable:   3,
			domain.CarStatusRented:      2,
			domain.CarStatusMaintenance: 1,
		}, nil)
		store.rentals.On("RealizedRevenue", ctx).Return(decimal.NewFromFloat(1234.50), nil)

		employee := domain.Principal{ID: 1, Role: domain.RoleEmployee}
		metrics, err := svc.FleetMetrics(ctx, employee)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), metrics.CarCounts[domain.CarStatusRented])
		assert.Equal(t, "1234.50", metrics.RealizedRevenue.StringFixed(2))
	})

	t.Run("Customer rejected", func(t *testing.T) {
		store := newStubStore()
		svc := newTestFleetService(store)

		customer := domain.Principal{ID: 7, Role: domain.RoleCustomer}
		_, err := svc.FleetMetrics(ctx, customer)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
