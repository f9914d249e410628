package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"servicehub/internal/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

const serviceColumns = `id, account_id, title, description, price, created_at, updated_at`

func scanService(row rowScanner) (models.Service, error) {
	var s models.Service
	err := row.Scan(&s.ID, &s.AccountID, &s.Title, &s.Description, &s.Price, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *ServiceRepository) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	query := `
INSERT INTO services (account_id, title, description, price, created_at, updated_at)
VALUES (?, ?, ?, ?, NOW(6), NOW(6))
`
	result, err := r.DB.ExecContext(ctx, query, s.AccountID, s.Title, s.Description, s.Price)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Service{}, models.ErrAccountNotFound
		}
		return models.Service{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Service{}, err
	}
	return r.GetServiceByID(ctx, id)
}

func (r *ServiceRepository) GetServiceByID(ctx context.Context, id int64) (models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ?`
	s, err := scanService(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Service{}, models.ErrServiceNotFound
	}
	return s, err
}

func (r *ServiceRepository) queryServices(ctx context.Context, query string, args ...any) ([]models.Service, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// ListServices returns every service in creation order.
func (r *ServiceRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at, id`
	return r.queryServices(ctx, query)
}

func (r *ServiceRepository) GetServicesByAccountID(ctx context.Context, accountID int64) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE account_id = ? ORDER BY created_at, id`
	return r.queryServices(ctx, query, accountID)
}

func (r *ServiceRepository) UpdateService(ctx context.Context, s models.Service) (models.Service, error) {
	query := `
UPDATE services
SET title = ?, description = ?, price = ?, updated_at = NOW(6)
WHERE id = ?
`
	if _, err := r.DB.ExecContext(ctx, query, s.Title, s.Description, s.Price, s.ID); err != nil {
		return models.Service{}, err
	}
	return r.GetServiceByID(ctx, s.ID)
}

// DeleteService removes the service together with its reviews.
func (r *ServiceRepository) DeleteService(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE service_id = ?`, id); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrServiceNotFound
	}
	return tx.Commit()
}
