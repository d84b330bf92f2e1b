package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prestige-rentals-backend/internal/domain"
)

type maintenanceRepository struct {
	q DBTX
}

const maintenanceColumns = `maintenance_id, car_id, service_date, completion_date, service_type, notes, cost, mileage_at_service, created_on`

func scanMaintenance(row interface{ Scan(dest ...any) error }) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	err := row.Scan(&m.ID, &m.CarID, &m.ServiceDate, &m.CompletionDate, &m.ServiceType,
		&m.Notes, &m.Cost, &m.MileageAtService, &m.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	query := `INSERT INTO maintenance (car_id, service_date, completion_date, service_type, notes, cost, mileage_at_service, created_on)
	          VALUES ($1, $2, NULL, $3, $4, $5, $6, $7) RETURNING maintenance_id`
	return r.q.QueryRowContext(ctx, query, m.CarID, m.ServiceDate, m.ServiceType, m.Notes,
		m.Cost, m.MileageAtService, time.Now()).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE maintenance_id = $1`
	return scanMaintenance(r.q.QueryRowContext(ctx, query, id))
}

func (r *maintenanceRepository) Complete(ctx context.Context, id int32, completedOn time.Time) error {
	query := `UPDATE maintenance SET completion_date = $1 WHERE maintenance_id = $2`
	res, err := r.q.ExecContext(ctx, query, completedOn, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *maintenanceRepository) ListByCar(ctx context.Context, carID int32) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE car_id = $1 ORDER BY service_date DESC`
	return r.list(ctx, query, carID)
}

func (r *maintenanceRepository) ListOpen(ctx context.Context) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE completion_date IS NULL ORDER BY service_date`
	return r.list(ctx, query)
}

func (r *maintenanceRepository) list(ctx context.Context, query string, args ...any) ([]domain.Maintenance, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *m)
	}
	return records, rows.Err()
}
