package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"servicehub/internal/models"
)

// HashtagRepository reads the account_hashtags join table in both
// directions: account -> tags and tag -> accounts.
type HashtagRepository struct {
	DB *sql.DB
}

func scanHashtag(row rowScanner) (models.Hashtag, error) {
	var h models.Hashtag
	err := row.Scan(&h.ID, &h.Tag, &h.CreatedAt)
	return h, err
}

func (r *HashtagRepository) queryHashtags(ctx context.Context, query string, args ...any) ([]models.Hashtag, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Hashtag{}
	for rows.Next() {
		h, err := scanHashtag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, h)
	}
	return tags, rows.Err()
}

// GetOrCreateHashtag returns the hashtag row for an already normalized tag,
// inserting it when missing.
func (r *HashtagRepository) GetOrCreateHashtag(ctx context.Context, tag string) (models.Hashtag, error) {
	if _, err := r.DB.ExecContext(ctx, `INSERT IGNORE INTO hashtags (tag, created_at) VALUES (?, NOW(6))`, tag); err != nil {
		return models.Hashtag{}, err
	}
	return r.GetHashtag(ctx, tag)
}

func (r *HashtagRepository) GetHashtag(ctx context.Context, tag string) (models.Hashtag, error) {
	h, err := scanHashtag(r.DB.QueryRowContext(ctx, `SELECT id, tag, created_at FROM hashtags WHERE tag = ?`, tag))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Hashtag{}, models.ErrHashtagNotFound
	}
	return h, err
}

// AttachHashtags links the normalized tags to the account, creating missing
// hashtags, and returns the tags that were not linked before.
func (r *HashtagRepository) AttachHashtags(ctx context.Context, accountID int64, tags []string) ([]string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	added := []string{}
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, `INSERT IGNORE INTO hashtags (tag, created_at) VALUES (?, NOW(6))`, tag); err != nil {
			return nil, fmt.Errorf("create hashtag %q: %w", tag, err)
		}
		var hashtagID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM hashtags WHERE tag = ?`, tag).Scan(&hashtagID); err != nil {
			return nil, fmt.Errorf("lookup hashtag %q: %w", tag, err)
		}
		result, err := tx.ExecContext(ctx, `INSERT IGNORE INTO account_hashtags (account_id, hashtag_id) VALUES (?, ?)`, accountID, hashtagID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, models.ErrAccountNotFound
			}
			return nil, fmt.Errorf("link hashtag %q: %w", tag, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			added = append(added, tag)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return added, nil
}

// DetachHashtag unlinks tag from the account. It reports false when the link
// did not exist.
func (r *HashtagRepository) DetachHashtag(ctx context.Context, accountID int64, tag string) (bool, error) {
	query := `
DELETE ah FROM account_hashtags ah
JOIN hashtags h ON h.id = ah.hashtag_id
WHERE ah.account_id = ? AND h.tag = ?
`
	result, err := r.DB.ExecContext(ctx, query, accountID, tag)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *HashtagRepository) GetHashtagsByAccountID(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	query := `
SELECT h.id, h.tag, h.created_at
FROM hashtags h
JOIN account_hashtags ah ON ah.hashtag_id = h.id
WHERE ah.account_id = ?
ORDER BY h.tag
`
	return r.queryHashtags(ctx, query, accountID)
}

func (r *HashtagRepository) GetAccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	query := `
SELECT a.id, a.username, a.email
FROM accounts a
JOIN account_hashtags ah ON ah.account_id = a.id
JOIN hashtags h ON h.id = ah.hashtag_id
WHERE h.tag = ?
ORDER BY a.id
`
	rows, err := r.DB.QueryContext(ctx, query, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.AccountSummary{}
	for rows.Next() {
		var a models.AccountSummary
		if err := rows.Scan(&a.ID, &a.Username, &a.Email); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SearchHashtags matches query anywhere inside the stored tag.
func (r *HashtagRepository) SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error) {
	stmt := `SELECT id, tag, created_at FROM hashtags WHERE tag LIKE ? ORDER BY tag`
	return r.queryHashtags(ctx, stmt, containsPattern(query))
}
