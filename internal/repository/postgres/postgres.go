package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/logger"
	"prestige-rentals-backend/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same repository code
// runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type repos struct {
	cars        repository.CarRepository
	rentals     repository.RentalRepository
	addons      repository.AddonRepository
	payments    repository.PaymentRepository
	maintenance repository.MaintenanceRepository
}

func newRepos(q DBTX) repos {
	return repos{
		cars:        &carRepository{q: q},
		rentals:     &rentalRepository{q: q},
		addons:      &addonRepository{q: q},
		payments:    &paymentRepository{q: q},
		maintenance: &maintenanceRepository{q: q},
	}
}

func (r repos) Cars() repository.CarRepository                { return r.cars }
func (r repos) Rentals() repository.RentalRepository          { return r.rentals }
func (r repos) Addons() repository.AddonRepository            { return r.addons }
func (r repos) Payments() repository.PaymentRepository        { return r.payments }
func (r repos) Maintenance() repository.MaintenanceRepository { return r.maintenance }

type Store struct {
	db *sql.DB
	repos
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		repos:     newRepos(db),
		customers: &customerRepository{q: db},
		employees: &employeeRepository{q: db},
	}
}

func (s *Store) Customers() repository.CustomerRepository { return s.customers }
func (s *Store) Employees() repository.EmployeeRepository { return s.employees }

// RunAtomic starts a transaction, rebinds the repositories to it and runs fn.
// A nil return from fn commits; any error rolls back every write in the unit.
func (s *Store) RunAtomic(ctx context.Context, fn func(tx repository.Atomic) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepos(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			logger.Error("Transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// translateConstraint maps a foreign-key violation onto the domain sentinel
// so callers answer with a conflict instead of an opaque server error.
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return domain.ErrRecordInUse
	}
	return err
}
