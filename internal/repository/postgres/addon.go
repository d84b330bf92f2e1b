package postgres

import (
	"context"

	"github.com/lib/pq"

	"prestige-rentals-backend/internal/domain"
)

type addonRepository struct {
	q DBTX
}

func (r *addonRepository) List(ctx context.Context) ([]domain.Addon, error) {
	query := `SELECT addon_id, name, price FROM addons ORDER BY price ASC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []domain.Addon
	for rows.Next() {
		var a domain.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Price); err != nil {
			return nil, err
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}

func (r *addonRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT addon_id, name, price FROM addons WHERE addon_id = ANY($1) ORDER BY addon_id`
	rows, err := r.q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []domain.Addon
	for rows.Next() {
		var a domain.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Price); err != nil {
			return nil, err
		}
		addons = append(addons, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(addons) != len(ids) {
		return nil, domain.ErrNotFound
	}
	return addons, nil
}

func (r *addonRepository) AttachToRental(ctx context.Context, rentalID int32, addons []domain.Addon) error {
	query := `INSERT INTO rental_addons (rental_id, addon_id, price) VALUES ($1, $2, $3)`
	for _, a := range addons {
		if _, err := r.q.ExecContext(ctx, query, rentalID, a.ID, a.Price); err != nil {
			return err
		}
	}
	return nil
}

func (r *addonRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalAddon, error) {
	query := `SELECT rental_id, addon_id, price FROM rental_addons WHERE rental_id = $1 ORDER BY addon_id`
	rows, err := r.q.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attached []domain.RentalAddon
	for rows.Next() {
		var ra domain.RentalAddon
		if err := rows.Scan(&ra.RentalID, &ra.AddonID, &ra.Price); err != nil {
			return nil, err
		}
		attached = append(attached, ra)
	}
	return attached, rows.Err()
}

func (r *addonRepository) DetachFromRental(ctx context.Context, rentalID int32) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM rental_addons WHERE rental_id = $1`, rentalID)
	return err
}
