package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prestige-rentals-backend/internal/domain"
)

type customerRepository struct {
	q DBTX
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (first_name, last_name, email, phone, password_hash, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING customer_id`
	return r.q.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone,
		c.PasswordHash, time.Now()).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT customer_id, first_name, last_name, email, phone, password_hash, created_on
	          FROM customers WHERE customer_id = $1`
	return scanCustomer(r.q.QueryRowContext(ctx, query, id))
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT customer_id, first_name, last_name, email, phone, password_hash, created_on
	          FROM customers WHERE email = $1`
	return scanCustomer(r.q.QueryRowContext(ctx, query, email))
}

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.PasswordHash, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type employeeRepository struct {
	q DBTX
}

func (r *employeeRepository) GetByID(ctx context.Context, id int32) (*domain.Employee, error) {
	query := `SELECT employee_id, name, email, password_hash, created_on FROM employees WHERE employee_id = $1`
	return scanEmployee(r.q.QueryRowContext(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT employee_id, name, email, password_hash, created_on FROM employees WHERE email = $1`
	return scanEmployee(r.q.QueryRowContext(ctx, query, email))
}

func scanEmployee(row *sql.Row) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
