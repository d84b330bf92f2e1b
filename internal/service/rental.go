package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/logger"
	"prestige-rentals-backend/internal/pricing"
	"prestige-rentals-backend/internal/repository"
	"prestige-rentals-backend/internal/security"
)

// Payment method recorded for the card-on-file flow: the booking transaction
// charges the quoted total, the return transaction charges any fee.
const paymentMethodCardOnFile = "Card on File"

type rentalService struct {
	store    repository.Store
	guard    security.Guard
	fees     pricing.FeeSchedule
	emailSvc EmailService
	now      func() time.Time
}

func NewRentalService(store repository.Store, guard security.Guard, fees pricing.FeeSchedule, emailSvc EmailService) RentalService {
	return &rentalService{
		store:    store,
		guard:    guard,
		fees:     fees,
		emailSvc: emailSvc,
		now:      time.Now,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, p domain.Principal, in CreateRentalInput) (*BookingConfirmation, error) {
	if err := s.guard.CanBookFor(p, in.CustomerID); err != nil {
		return nil, err
	}
	if in.PickupDate.IsZero() || in.DueDate.IsZero() || in.DueDate.Before(in.PickupDate) {
		return nil, domain.ErrInvalidDateRange
	}

	customer, err := s.store.Customers().GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("look up customer %d: %w", in.CustomerID, err)
	}

	var confirmation *BookingConfirmation
	var bookedCar *domain.Car

	// The availability read and the rental/car/payment writes share one
	// transaction; the car row lock serializes competing bookings so only
	// one of two overlapping requests can succeed.
	err = s.store.RunAtomic(ctx, func(tx repository.Atomic) error {
		car, err := tx.Cars().GetByIDForUpdate(ctx, in.CarID)
		if err != nil {
			return fmt.Errorf("look up car %d: %w", in.CarID, err)
		}
		if car.Status != domain.CarStatusAvailable {
			return domain.ErrCarUnavailable
		}
		overlaps, err := tx.Rentals().HasOverlappingRental(ctx, in.CarID, in.PickupDate, in.DueDate)
		if err != nil {
			return fmt.Errorf("check overlapping rentals: %w", err)
		}
		if overlaps {
			return domain.ErrCarUnavailable
		}

		addons, err := tx.Addons().GetByIDs(ctx, in.AddonIDs)
		if err != nil {
			return fmt.Errorf("look up addons: %w", err)
		}

		quote := pricing.Quote(car.DailyRate, in.PickupDate, in.DueDate, addons)

		due := in.DueDate
		rental := &domain.Rental{
			CustomerID: in.CustomerID,
			CarID:      in.CarID,
			PickupDate: in.PickupDate,
			DueDate:    &due,
			TotalCost:  &quote.Total,
			LateFee:    decimal.Zero,
		}
		if err := tx.Rentals().Create(ctx, rental); err != nil {
			return fmt.Errorf("create rental: %w", err)
		}
		if err := tx.Addons().AttachToRental(ctx, rental.ID, addons); err != nil {
			return fmt.Errorf("attach addons: %w", err)
		}

		if !car.Status.CanTransitionTo(domain.CarStatusRented) {
			return domain.ErrIllegalCarTransition
		}
		if err := tx.Cars().UpdateStatus(ctx, car.ID, domain.CarStatusRented); err != nil {
			return fmt.Errorf("mark car rented: %w", err)
		}

		payment := &domain.Payment{
			RentalID:      rental.ID,
			Amount:        quote.Total,
			PaymentDate:   s.now(),
			PaymentMethod: paymentMethodCardOnFile,
			Reference:     uuid.NewString(),
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		confirmation = &BookingConfirmation{RentalID: rental.ID, Breakdown: quote}
		bookedCar = car
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		carName := fmt.Sprintf("%s %s", bookedCar.Make, bookedCar.Model)
		if err := s.emailSvc.SendRentalConfirmation(ctx, customer.Email, customer.FirstName,
			carName, in.PickupDate, in.DueDate, confirmation.Breakdown.Total); err != nil {
			logger.Warn("Failed to send rental confirmation", "rental_id", confirmation.RentalID, "error", err)
		}
	}

	logger.Info("Rental created", "rental_id", confirmation.RentalID, "car_id", in.CarID,
		"customer_id", in.CustomerID, "total", confirmation.Breakdown.Total)
	return confirmation, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, p domain.Principal, rentalID int32) (*ReturnResult, error) {
	// Ownership is checked on a plain read before the transaction opens.
	current, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CanReturnRental(p, current); err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, domain.ErrRentalNotActive
	}

	returnedOn := s.now()
	// A booking with a future pickup has nothing to return yet; finalizing it
	// would record return_date < pickup_date and charge the early-return fee
	// for a rental that never started.
	if returnedOn.Before(current.PickupDate) {
		return nil, domain.ErrRentalNotStarted
	}
	var result *ReturnResult
	var returnedCar *domain.Car

	err = s.store.RunAtomic(ctx, func(tx repository.Atomic) error {
		rental, err := tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		// Re-check under the lock: a concurrent return may have won.
		if !rental.IsActive() {
			return domain.ErrRentalNotActive
		}

		car, err := tx.Cars().GetByIDForUpdate(ctx, rental.CarID)
		if err != nil {
			return fmt.Errorf("look up car %d: %w", rental.CarID, err)
		}
		if car.Status != domain.CarStatusRented {
			return fmt.Errorf("car %d is %s, not rented: %w", car.ID, car.Status, domain.ErrIllegalCarTransition)
		}

		fee := decimal.Zero
		if rental.DueDate != nil {
			fee = s.fees.ReturnFee(car.DailyRate, *rental.DueDate, returnedOn)
		}

		if rental.TotalCost == nil {
			// Rows booked before pricing was captured at creation: settle the
			// base cost over the originally agreed window now.
			due := returnedOn
			if rental.DueDate != nil {
				due = *rental.DueDate
			}
			attached, err := tx.Addons().ListByRental(ctx, rental.ID)
			if err != nil {
				return fmt.Errorf("list rental addons: %w", err)
			}
			addonsCost := decimal.Zero
			for _, ra := range attached {
				addonsCost = addonsCost.Add(ra.Price)
			}
			base := pricing.BaseCost(car.DailyRate, pricing.RentalDays(rental.PickupDate, due))
			total := pricing.Total(base, addonsCost, decimal.Zero)
			rental.TotalCost = &total
		}

		rental.ReturnDate = &returnedOn
		rental.LateFee = fee
		if err := tx.Rentals().Finalize(ctx, rental); err != nil {
			return fmt.Errorf("finalize rental: %w", err)
		}

		if !car.Status.CanTransitionTo(domain.CarStatusAvailable) {
			return domain.ErrIllegalCarTransition
		}
		if err := tx.Cars().UpdateStatus(ctx, car.ID, domain.CarStatusAvailable); err != nil {
			return fmt.Errorf("mark car available: %w", err)
		}

		if fee.IsPositive() {
			payment := &domain.Payment{
				RentalID:      rental.ID,
				Amount:        fee,
				PaymentDate:   returnedOn,
				PaymentMethod: paymentMethodCardOnFile,
				Reference:     uuid.NewString(),
			}
			if err := tx.Payments().Create(ctx, payment); err != nil {
				return fmt.Errorf("create fee payment: %w", err)
			}
		}

		result = &ReturnResult{Rental: rental, FeeApplied: fee, CarStatus: domain.CarStatusAvailable}
		returnedCar = car
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		if customer, err := s.store.Customers().GetByID(ctx, result.Rental.CustomerID); err == nil {
			carName := fmt.Sprintf("%s %s", returnedCar.Make, returnedCar.Model)
			if err := s.emailSvc.SendReturnReceipt(ctx, customer.Email, customer.FirstName,
				carName, *result.Rental.TotalCost, result.FeeApplied); err != nil {
				logger.Warn("Failed to send return receipt", "rental_id", rentalID, "error", err)
			}
		}
	}

	logger.Info("Rental returned", "rental_id", rentalID, "fee", result.FeeApplied)
	return result, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, p domain.Principal, rentalID int32) error {
	current, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return err
	}
	if err := s.guard.CanDeleteRental(p, current); err != nil {
		return err
	}
	if current.IsActive() {
		return domain.ErrRentalStillActive
	}

	// Children go first to satisfy the foreign keys.
	err = s.store.RunAtomic(ctx, func(tx repository.Atomic) error {
		rental, err := tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.IsActive() {
			return domain.ErrRentalStillActive
		}
		if err := tx.Addons().DetachFromRental(ctx, rentalID); err != nil {
			return fmt.Errorf("delete rental addons: %w", err)
		}
		if err := tx.Payments().DeleteByRental(ctx, rentalID); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if err := tx.Rentals().Delete(ctx, rentalID); err != nil {
			return fmt.Errorf("delete rental: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Rental deleted", "rental_id", rentalID, "by", p.Role)
	return nil
}

// CheckAvailability answers whether the car can be booked for [pickup, due).
// Unavailability is an expected outcome, not an error.
func (s *rentalService) CheckAvailability(ctx context.Context, carID int32, pickup, due time.Time) (bool, error) {
	if pickup.IsZero() || due.IsZero() || due.Before(pickup) {
		return false, domain.ErrInvalidDateRange
	}
	car, err := s.store.Cars().GetByID(ctx, carID)
	if err != nil {
		return false, err
	}
	if car.Status != domain.CarStatusAvailable {
		return false, nil
	}
	overlaps, err := s.store.Rentals().HasOverlappingRental(ctx, carID, pickup, due)
	if err != nil {
		return false, err
	}
	return !overlaps, nil
}

func (s *rentalService) GetRental(ctx context.Context, p domain.Principal, rentalID int32) (*domain.Rental, []domain.RentalAddon, []domain.Payment, error) {
	rental, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := s.guard.CanViewRental(p, rental); err != nil {
		return nil, nil, nil, err
	}
	addons, err := s.store.Addons().ListByRental(ctx, rentalID)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := s.store.Payments().ListByRental(ctx, rentalID)
	if err != nil {
		return nil, nil, nil, err
	}
	return rental, addons, payments, nil
}

func (s *rentalService) ListCustomerRentals(ctx context.Context, p domain.Principal, customerID, page, pageSize int32) ([]domain.Rental, int32, error) {
	if err := s.guard.CanBookFor(p, customerID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.store.Rentals().ListByCustomer(ctx, customerID, page, pageSize)
}

func (s *rentalService) GetActiveRental(ctx context.Context, p domain.Principal, customerID int32) (*ActiveRental, error) {
	if err := s.guard.CanBookFor(p, customerID); err != nil {
		return nil, err
	}
	rental, err := s.store.Rentals().GetActiveByCustomer(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	car, err := s.store.Cars().GetByID(ctx, rental.CarID)
	if err != nil {
		return nil, err
	}
	estimate := pricing.BaseCost(car.DailyRate, pricing.RentalDays(rental.PickupDate, s.now())).Round(2)
	return &ActiveRental{Rental: rental, EstimatedCost: estimate}, nil
}
