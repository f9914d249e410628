package repositories

import (
	"context"
	"database/sql"
	"errors"

	"servicehub/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

const reviewColumns = `id, account_id, client_id, service_id, rating, title, body, created_at, updated_at`

func scanReview(row rowScanner) (models.Review, error) {
	var rev models.Review
	err := row.Scan(&rev.ID, &rev.AccountID, &rev.ClientID, &rev.ServiceID, &rev.Rating,
		&rev.Title, &rev.Body, &rev.CreatedAt, &rev.UpdatedAt)
	return rev, err
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE client_id = ? AND service_id = ?`, rev.ClientID, rev.ServiceID).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	query := `
INSERT INTO reviews (account_id, client_id, service_id, rating, title, body, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, NOW(6), NOW(6))
`
	result, err := r.DB.ExecContext(ctx, query,
		rev.AccountID, rev.ClientID, rev.ServiceID, rev.Rating, rev.Title, rev.Body,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.Review{}, models.ErrAlreadyReviewed
		}
		if isForeignKeyViolation(err) {
			return models.Review{}, models.ErrServiceNotFound
		}
		return models.Review{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, id)
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int64) (models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	rev, err := scanReview(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Review{}, models.ErrReviewNotFound
	}
	return rev, err
}

func (r *ReviewRepository) queryReviews(ctx context.Context, where string, id int64) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE ` + where + ` ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) GetReviewsByServiceID(ctx context.Context, serviceID int64) ([]models.Review, error) {
	return r.queryReviews(ctx, "service_id = ?", serviceID)
}

// GetReviewsByAccountID returns reviews received by the account's services.
func (r *ReviewRepository) GetReviewsByAccountID(ctx context.Context, accountID int64) ([]models.Review, error) {
	return r.queryReviews(ctx, "account_id = ?", accountID)
}

// GetReviewsByClientID returns reviews written by the account.
func (r *ReviewRepository) GetReviewsByClientID(ctx context.Context, clientID int64) ([]models.Review, error) {
	return r.queryReviews(ctx, "client_id = ?", clientID)
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	query := `
UPDATE reviews
SET rating = ?, title = ?, body = ?, updated_at = NOW(6)
WHERE id = ?
`
	if _, err := r.DB.ExecContext(ctx, query, rev.Rating, rev.Title, rev.Body, rev.ID); err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, rev.ID)
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}
