package repositories

import (
	"context"

	"servicehub/internal/models"
)

// RecordStore adapts the SQL repositories to search.RecordStore.
type RecordStore struct {
	Services *ServiceRepository
	Reviews  *ReviewRepository
	Hashtags *HashtagRepository
}

func (s *RecordStore) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Services.ListServices(ctx)
}

func (s *RecordStore) AccountHashtags(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	return s.Hashtags.GetHashtagsByAccountID(ctx, accountID)
}

func (s *RecordStore) ReviewsForService(ctx context.Context, serviceID int64) ([]models.Review, error) {
	return s.Reviews.GetReviewsByServiceID(ctx, serviceID)
}

func (s *RecordStore) ReviewsForAccount(ctx context.Context, accountID int64) ([]models.Review, error) {
	return s.Reviews.GetReviewsByAccountID(ctx, accountID)
}

func (s *RecordStore) AccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	return s.Hashtags.GetAccountsByHashtag(ctx, tag)
}

func (s *RecordStore) SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error) {
	return s.Hashtags.SearchHashtags(ctx, query)
}
