package services

import (
	"context"

	"servicehub/internal/models"
)

type HashtagStore interface {
	AttachHashtags(ctx context.Context, accountID int64, tags []string) ([]string, error)
	DetachHashtag(ctx context.Context, accountID int64, tag string) (bool, error)
	GetHashtagsByAccountID(ctx context.Context, accountID int64) ([]models.Hashtag, error)
	GetAccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error)
	SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error)
}

type HashtagService struct {
	HashtagRepo HashtagStore
}

// AddHashtags links the tags to the account and returns the ones that were
// not linked before.
func (s *HashtagService) AddHashtags(ctx context.Context, callerID, accountID int64, tags []string) ([]string, error) {
	if callerID != accountID {
		return nil, models.ErrNotOwner
	}
	normalized := models.NormalizeTags(tags)
	if len(normalized) == 0 {
		return nil, models.ErrEmptyTag
	}
	return s.HashtagRepo.AttachHashtags(ctx, accountID, normalized)
}

func (s *HashtagService) RemoveHashtag(ctx context.Context, callerID, accountID int64, tag string) error {
	if callerID != accountID {
		return models.ErrNotOwner
	}
	normalized := models.NormalizeTag(tag)
	if normalized == "" {
		return models.ErrEmptyTag
	}
	removed, err := s.HashtagRepo.DetachHashtag(ctx, accountID, normalized)
	if err != nil {
		return err
	}
	if !removed {
		return models.ErrHashtagNotFound
	}
	return nil
}

func (s *HashtagService) GetAccountHashtags(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	return s.HashtagRepo.GetHashtagsByAccountID(ctx, accountID)
}

func (s *HashtagService) GetAccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	normalized := models.NormalizeTag(tag)
	if normalized == "" {
		return nil, models.ErrEmptyTag
	}
	return s.HashtagRepo.GetAccountsByHashtag(ctx, normalized)
}

// SearchHashtags matches the normalized query as a substring of stored tags.
func (s *HashtagService) SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error) {
	return s.HashtagRepo.SearchHashtags(ctx, models.NormalizeTag(query))
}
