package search

import (
	"context"

	"servicehub/internal/models"
)

// RecordStore is the read side of the persistence layer consumed by the
// search core. Implementations must return a consistent snapshot per call.
type RecordStore interface {
	// ListServices returns every service in creation order.
	ListServices(ctx context.Context) ([]models.Service, error)
	AccountHashtags(ctx context.Context, accountID int64) ([]models.Hashtag, error)
	ReviewsForService(ctx context.Context, serviceID int64) ([]models.Review, error)
	ReviewsForAccount(ctx context.Context, accountID int64) ([]models.Review, error)
	AccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error)
	SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error)
}
