package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/repository"
)

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockCarRepo) UpdateMileage(ctx context.Context, id int32, mileage int32) error {
	args := m.Called(ctx, id, mileage)
	return args.Error(0)
}
func (m *MockCarRepo) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) FleetCounts(ctx context.Context) (map[domain.CarStatus]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.CarStatus]int32), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Finalize(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) HasOverlappingRental(ctx context.Context, carID int32, pickup, due time.Time) (bool, error) {
	args := m.Called(ctx, carID, pickup, due)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) GetActiveByCar(ctx context.Context, carID int32) (*domain.Rental, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetActiveByCustomer(ctx context.Context, customerID int32) (*domain.Rental, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) RealizedRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAddonRepo
type MockAddonRepo struct {
	mock.Mock
}

func (m *MockAddonRepo) List(ctx context.Context) ([]domain.Addon, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Addon), args.Error(1)
}
func (m *MockAddonRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Addon, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Addon), args.Error(1)
}
func (m *MockAddonRepo) AttachToRental(ctx context.Context, rentalID int32, addons []domain.Addon) error {
	args := m.Called(ctx, rentalID, addons)
	return args.Error(0)
}
func (m *MockAddonRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalAddon, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalAddon), args.Error(1)
}
func (m *MockAddonRepo) DetachFromRental(ctx context.Context, rentalID int32) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) DeleteByRental(ctx context.Context, rentalID int32) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, rec *domain.Maintenance) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) Complete(ctx context.Context, id int32, completedOn time.Time) error {
	args := m.Called(ctx, id, completedOn)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) ListByCar(ctx context.Context, carID int32) ([]domain.Maintenance, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) ListOpen(ctx context.Context) ([]domain.Maintenance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockEmployeeRepo
type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) GetByID(ctx context.Context, id int32) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalConfirmation(ctx context.Context, email, name, carName string, pickup, due time.Time, total decimal.Decimal) error {
	args := m.Called(ctx, email, name, carName, pickup, due, total)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReceipt(ctx context.Context, email, name, carName string, total, fee decimal.Decimal) error {
	args := m.Called(ctx, email, name, carName, total, fee)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, name, carName string, due time.Time) error {
	args := m.Called(ctx, email, name, carName, due)
	return args.Error(0)
}

// stubStore binds the mock repositories into a repository.Store. RunAtomic
// hands the same repositories to the closure, so transactional code paths run
// against the mocks directly.
type stubStore struct {
	cars        *MockCarRepo
	rentals     *MockRentalRepo
	addons      *MockAddonRepo
	payments    *MockPaymentRepo
	maintenance *MockMaintenanceRepo
	customers   *MockCustomerRepo
	employees   *MockEmployeeRepo

	atomicCalls int
}

func newStubStore() *stubStore {
	return &stubStore{
		cars:        new(MockCarRepo),
		rentals:     new(MockRentalRepo),
		addons:      new(MockAddonRepo),
		payments:    new(MockPaymentRepo),
		maintenance: new(MockMaintenanceRepo),
		customers:   new(MockCustomerRepo),
		employees:   new(MockEmployeeRepo),
	}
}

func (s *stubStore) Cars() repository.CarRepository                { return s.cars }
func (s *stubStore) Rentals() repository.RentalRepository          { return s.rentals }
func (s *stubStore) Addons() repository.AddonRepository            { return s.addons }
func (s *stubStore) Payments() repository.PaymentRepository        { return s.payments }
func (s *stubStore) Maintenance() repository.MaintenanceRepository { return s.maintenance }
func (s *stubStore) Customers() repository.CustomerRepository      { return s.customers }
func (s *stubStore) Employees() repository.EmployeeRepository      { return s.employees }

func (s *stubStore) RunAtomic(ctx context.Context, fn func(tx repository.Atomic) error) error {
	s.atomicCalls++
	return fn(s)
}
