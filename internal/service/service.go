package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/pricing"
)

// CreateRentalInput carries everything a booking needs. The acting principal
// travels separately so authorization stays out of the payload.
type CreateRentalInput struct {
	CustomerID int32
	CarID      int32
	PickupDate time.Time
	DueDate    time.Time
	AddonIDs   []int32
}

// BookingConfirmation is returned by a successful booking transaction.
type BookingConfirmation struct {
	RentalID  int32                 `json:"rental_id"`
	Breakdown pricing.CostBreakdown `json:"breakdown"`
}

// ReturnResult is returned by a successful return transaction.
type ReturnResult struct {
	Rental     *domain.Rental   `json:"rental"`
	FeeApplied decimal.Decimal  `json:"fee_applied"`
	CarStatus  domain.CarStatus `json:"car_status"`
}

// ActiveRental pairs an open rental with its estimated cost to date.
type ActiveRental struct {
	Rental        *domain.Rental  `json:"rental"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type RentalService interface {
	CreateRental(ctx context.Context, p domain.Principal, in CreateRentalInput) (*BookingConfirmation, error)
	ReturnRental(ctx context.Context, p domain.Principal, rentalID int32) (*ReturnResult, error)
	DeleteRental(ctx context.Context, p domain.Principal, rentalID int32) error
	CheckAvailability(ctx context.Context, carID int32, pickup, due time.Time) (bool, error)
	GetRental(ctx context.Context, p domain.Principal, rentalID int32) (*domain.Rental, []domain.RentalAddon, []domain.Payment, error)
	ListCustomerRentals(ctx context.Context, p domain.Principal, customerID, page, pageSize int32) ([]domain.Rental, int32, error)
	GetActiveRental(ctx context.Context, p domain.Principal, customerID int32) (*ActiveRental, error)
}

// ScheduleMaintenanceInput carries a maintenance booking for a car.
type ScheduleMaintenanceInput struct {
	CarID       int32
	ServiceDate time.Time
	ServiceType string
	Notes       string
	Cost        *decimal.Decimal
	Mileage     int32
}

// FleetMetrics is the dashboard snapshot: car counts per status and revenue
// realized from completed rentals.
type FleetMetrics struct {
	CarCounts       map[domain.CarStatus]int32 `json:"car_counts"`
	RealizedRevenue decimal.Decimal            `json:"realized_revenue"`
}

type FleetService interface {
	AddCar(ctx context.Context, p domain.Principal, car *domain.Car) error
	GetCar(ctx context.Context, carID int32) (*domain.Car, error)
	ListAvailableCars(ctx context.Context) ([]domain.Car, error)
	ListAddons(ctx context.Context) ([]domain.Addon, error)
	ScheduleMaintenance(ctx context.Context, p domain.Principal, in ScheduleMaintenanceInput) (*domain.Maintenance, domain.CarStatus, error)
	CompleteMaintenance(ctx context.Context, p domain.Principal, maintenanceID int32) (domain.CarStatus, error)
	MaintenanceHistory(ctx context.Context, p domain.Principal, carID int32) ([]domain.Maintenance, error)
	FleetMetrics(ctx context.Context, p domain.Principal) (*FleetMetrics, error)
}

type AuthService interface {
	RegisterCustomer(ctx context.Context, firstName, lastName, email, phone, password string) (*domain.Customer, string, error)
	LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, error)
	LoginEmployee(ctx context.Context, email, password string) (*domain.Employee, string, error)
}

type EmailService interface {
	SendRentalConfirmation(ctx context.Context, email, name, carName string, pickup, due time.Time, total decimal.Decimal) error
	SendReturnReceipt(ctx context.Context, email, name, carName string, total, fee decimal.Decimal) error
	SendOverdueReminder(ctx context.Context, email, name, carName string, due time.Time) error
}
