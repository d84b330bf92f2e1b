package service

import (
	"context"
	"fmt"
	"time"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/logger"
	"prestige-rentals-backend/internal/repository"
	"prestige-rentals-backend/internal/security"
)

type fleetService struct {
	store repository.Store
	guard security.Guard
	now   func() time.Time
}

func NewFleetService(store repository.Store, guard security.Guard) FleetService {
	return &fleetService{store: store, guard: guard, now: time.Now}
}

func (s *fleetService) AddCar(ctx context.Context, p domain.Principal, car *domain.Car) error {
	if err := s.guard.CanManageFleet(p); err != nil {
		return err
	}
	if car.Status == "" {
		car.Status = domain.CarStatusAvailable
	}
	if err := s.store.Cars().Create(ctx, car); err != nil {
		return fmt.Errorf("create car: %w", err)
	}
	logger.Info("Car added to fleet", "car_id", car.ID, "plate", car.LicensePlate)
	return nil
}

func (s *fleetService) GetCar(ctx context.Context, carID int32) (*domain.Car, error) {
	return s.store.Cars().GetByID(ctx, carID)
}

func (s *fleetService) ListAvailableCars(ctx context.Context) ([]domain.Car, error) {
	return s.store.Cars().ListByStatus(ctx, domain.CarStatusAvailable)
}

func (s *fleetService) ListAddons(ctx context.Context) ([]domain.Addon, error) {
	return s.store.Addons().List(ctx)
}

func (s *fleetService) ScheduleMaintenance(ctx context.Context, p domain.Principal, in ScheduleMaintenanceInput) (*domain.Maintenance, domain.CarStatus, error) {
	if err := s.guard.CanManageFleet(p); err != nil {
		return nil, "", err
	}

	record := &domain.Maintenance{
		CarID:            in.CarID,
		ServiceDate:      in.ServiceDate,
		ServiceType:      in.ServiceType,
		Notes:            in.Notes,
		Cost:             in.Cost,
		MileageAtService: in.Mileage,
	}

	err := s.store.RunAtomic(ctx, func(tx repository.Atomic) error {
		car, err := tx.Cars().GetByIDForUpdate(ctx, in.CarID)
		if err != nil {
			return fmt.Errorf("look up car %d: %w", in.CarID, err)
		}
		if car.Status == domain.CarStatusRented {
			return domain.ErrCarHasActiveRental
		}
		if !car.Status.CanTransitionTo(domain.CarStatusMaintenance) {
			return domain.ErrIllegalCarTransition
		}

		if err := tx.Maintenance().Create(ctx, record); err != nil {
			return fmt.Errorf("create maintenance record: %w", err)
		}
		if in.Mileage > 0 {
			if err := tx.Cars().UpdateMileage(ctx, car.ID, in.Mileage); err != nil {
				return fmt.Errorf("update mileage: %w", err)
			}
		}
		if err := tx.Cars().UpdateStatus(ctx, car.ID, domain.CarStatusMaintenance); err != nil {
			return fmt.Errorf("mark car in maintenance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	logger.Info("Maintenance scheduled", "maintenance_id", record.ID, "car_id", in.CarID, "type", in.ServiceType)
	return record, domain.CarStatusMaintenance, nil
}

func (s *fleetService) CompleteMaintenance(ctx context.Context, p domain.Principal, maintenanceID int32) (domain.CarStatus, error) {
	if err := s.guard.CanManageFleet(p); err != nil {
		return "", err
	}

	err := s.store.RunAtomic(ctx, func(tx repository.Atomic) error {
		record, err := tx.Maintenance().GetByID(ctx, maintenanceID)
		if err != nil {
			return err
		}
		if !record.IsOpen() {
			return domain.ErrMaintenanceNotOpen
		}

		car, err := tx.Cars().GetByIDForUpdate(ctx, record.CarID)
		if err != nil {
			return fmt.Errorf("look up car %d: %w", record.CarID, err)
		}
		if !car.Status.CanTransitionTo(domain.CarStatusAvailable) {
			return domain.ErrIllegalCarTransition
		}

		if err := tx.Maintenance().Complete(ctx, maintenanceID, s.now()); err != nil {
			return fmt.Errorf("complete maintenance record: %w", err)
		}
		if err := tx.Cars().UpdateStatus(ctx, car.ID, domain.CarStatusAvailable); err != nil {
			return fmt.Errorf("return car to service: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("Maintenance completed", "maintenance_id", maintenanceID)
	return domain.CarStatusAvailable, nil
}

func (s *fleetService) MaintenanceHistory(ctx context.Context, p domain.Principal, carID int32) ([]domain.Maintenance, error) {
	if err := s.guard.CanManageFleet(p); err != nil {
		return nil, err
	}
	return s.store.Maintenance().ListByCar(ctx, carID)
}

func (s *fleetService) FleetMetrics(ctx context.Context, p domain.Principal) (*FleetMetrics, error) {
	if err := s.guard.CanManageFleet(p); err != nil {
		return nil, err
	}
	counts, err := s.store.Cars().FleetCounts(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.store.Rentals().RealizedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &FleetMetrics{CarCounts: counts, RealizedRevenue: revenue}, nil
}
