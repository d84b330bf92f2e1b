package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"prestige-rentals-backend/internal/domain"
)

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	// GetByIDForUpdate locks the car row for the duration of the enclosing
	// transaction. Callers outside a transaction must use GetByID.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error)
	UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error
	UpdateMileage(ctx context.Context, id int32, mileage int32) error
	ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error)
	FleetCounts(ctx context.Context) (map[domain.CarStatus]int32, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error)
	// Finalize sets the return date and fee columns in one statement.
	Finalize(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id int32) error
	// HasOverlappingRental reports whether any active rental on the car
	// overlaps the half-open window [pickup, due). A rental without a due
	// date counts as ongoing indefinitely.
	HasOverlappingRental(ctx context.Context, carID int32, pickup, due time.Time) (bool, error)
	GetActiveByCar(ctx context.Context, carID int32) (*domain.Rental, error)
	GetActiveByCustomer(ctx context.Context, customerID int32) (*domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Rental, int32, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
	RealizedRevenue(ctx context.Context) (decimal.Decimal, error)
}

type AddonRepository interface {
	List(ctx context.Context) ([]domain.Addon, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Addon, error)
	AttachToRental(ctx context.Context, rentalID int32, addons []domain.Addon) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalAddon, error)
	DetachFromRental(ctx context.Context, rentalID int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	DeleteByRental(ctx context.Context, rentalID int32) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) error
	GetByID(ctx context.Context, id int32) (*domain.Maintenance, error)
	Complete(ctx context.Context, id int32, completedOn time.Time) error
	ListByCar(ctx context.Context, carID int32) ([]domain.Maintenance, error)
	ListOpen(ctx context.Context) ([]domain.Maintenance, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
}

// Atomic is the set of repositories visible inside one transactional unit.
// Every read feeding a write set (car row, overlap check) must go through the
// Atomic handed to the RunAtomic closure, never through the outer store.
type Atomic interface {
	Cars() CarRepository
	Rentals() RentalRepository
	Addons() AddonRepository
	Payments() PaymentRepository
	Maintenance() MaintenanceRepository
}

// Store is the full persistence surface: plain repositories for reads plus
// the transaction coordinator for multi-row write sets.
type Store interface {
	Atomic
	Customers() CustomerRepository
	Employees() EmployeeRepository
	// RunAtomic executes fn inside a database transaction. If fn returns an
	// error, every write in the unit is rolled back.
	RunAtomic(ctx context.Context, fn func(tx Atomic) error) error
}
