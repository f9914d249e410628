package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"servicehub/internal/models"
)

type AccountRepository struct {
	DB *sql.DB
}

const accountColumns = `id, username, email, password_hash, bio, website, is_verified, latitude, longitude, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		a        models.Account
		bio      sql.NullString
		website  sql.NullString
		lat, lon sql.NullFloat64
		updated  sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &bio, &website,
		&a.IsVerified, &lat, &lon, &a.CreatedAt, &updated)
	if err != nil {
		return models.Account{}, err
	}
	if bio.Valid {
		a.Bio = &bio.String
	}
	if website.Valid {
		a.Website = &website.String
	}
	if lat.Valid && lon.Valid {
		a.Location = &models.GeoPoint{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	if updated.Valid {
		a.UpdatedAt = &updated.Time
	}
	return a, nil
}

func accountWriteError(err error) error {
	switch {
	case duplicateKeyIs(err, "username"):
		return models.ErrDuplicateUsername
	case duplicateKeyIs(err, "email"):
		return models.ErrDuplicateEmail
	}
	return err
}

func (r *AccountRepository) CreateAccount(ctx context.Context, a models.Account) (models.Account, error) {
	query := `
INSERT INTO accounts (username, email, password_hash, is_verified, created_at)
VALUES (?, ?, ?, FALSE, NOW(6))
`
	result, err := r.DB.ExecContext(ctx, query, a.Username, a.Email, a.PasswordHash)
	if err != nil {
		return models.Account{}, accountWriteError(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Account{}, err
	}
	return r.GetAccountByID(ctx, id)
}

func (r *AccountRepository) getOne(ctx context.Context, where string, arg any) (models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where
	a, err := scanAccount(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, models.ErrAccountNotFound
	}
	return a, err
}

func (r *AccountRepository) GetAccountByID(ctx context.Context, id int64) (models.Account, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *AccountRepository) GetAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.getOne(ctx, "email = ?", email)
}

// GetAccountByLogin matches either the username or the email.
func (r *AccountRepository) GetAccountByLogin(ctx context.Context, login string) (models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = ? OR email = ? ORDER BY id LIMIT 1`
	a, err := scanAccount(r.DB.QueryRowContext(ctx, query, login, login))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, models.ErrAccountNotFound
	}
	return a, err
}

// UpdateAccount writes every mutable column of a. Callers merge partial
// updates before calling.
func (r *AccountRepository) UpdateAccount(ctx context.Context, a models.Account) (models.Account, error) {
	var lat, lon sql.NullFloat64
	if a.Location != nil {
		lat = sql.NullFloat64{Float64: a.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: a.Location.Longitude, Valid: true}
	}
	query := `
UPDATE accounts
SET username = ?, email = ?, password_hash = ?, bio = ?, website = ?, latitude = ?, longitude = ?, updated_at = NOW(6)
WHERE id = ?
`
	result, err := r.DB.ExecContext(ctx, query,
		a.Username, a.Email, a.PasswordHash, a.Bio, a.Website, lat, lon, a.ID)
	if err != nil {
		return models.Account{}, accountWriteError(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// MySQL reports 0 for unchanged rows too, so confirm existence
		if _, err := r.GetAccountByID(ctx, a.ID); err != nil {
			return models.Account{}, err
		}
	}
	return r.GetAccountByID(ctx, a.ID)
}

// DeleteAccount removes the account and everything that references it in a
// single transaction.
func (r *AccountRepository) DeleteAccount(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []struct {
		name  string
		query string
		args  []any
	}{
		{"reviews", `DELETE FROM reviews WHERE client_id = ? OR account_id = ? OR service_id IN (SELECT id FROM services WHERE account_id = ?)`, []any{id, id, id}},
		{"services", `DELETE FROM services WHERE account_id = ?`, []any{id}},
		{"hashtag links", `DELETE FROM account_hashtags WHERE account_id = ?`, []any{id}},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, step.args...); err != nil {
			return fmt.Errorf("delete %s: %w", step.name, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrAccountNotFound
	}
	return tx.Commit()
}
