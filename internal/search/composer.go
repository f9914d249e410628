package search

import (
	"context"
	"fmt"
	"sort"

	"servicehub/internal/models"
)

// Criteria describes one service search.
type Criteria struct {
	Keyword  string
	MinPrice *int64
	MaxPrice *int64
	Hashtags []string
	Sort     models.SortOption
}

// Composer joins the filter predicates, the hashtag cross-filter and the
// sort step over a RecordStore. It holds no per-request state.
type Composer struct {
	Store RecordStore
}

func NewComposer(store RecordStore) *Composer {
	return &Composer{Store: store}
}

// Search returns the matching services in the requested order. No match is
// an empty slice, not an error.
func (c *Composer) Search(ctx context.Context, crit Criteria) ([]models.Service, error) {
	all, err := c.Store.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	candidates := make([]models.Service, 0, len(all))
	for _, svc := range all {
		if MatchesKeyword(svc, crit.Keyword) && MatchesPriceRange(svc, crit.MinPrice, crit.MaxPrice) {
			candidates = append(candidates, svc)
		}
	}

	wanted := models.NormalizeTags(crit.Hashtags)
	if len(crit.Hashtags) > 0 {
		candidates, err = c.filterByOwnerTags(ctx, candidates, wanted)
		if err != nil {
			return nil, err
		}
	}

	if err := c.sortServices(ctx, candidates, crit.Sort); err != nil {
		return nil, err
	}
	return candidates, nil
}

// filterByOwnerTags keeps services whose owner holds any wanted tag. Each
// owner's tags are fetched once per call.
func (c *Composer) filterByOwnerTags(ctx context.Context, services []models.Service, wanted []string) ([]models.Service, error) {
	if len(wanted) == 0 {
		// only blank tags were requested; nothing can match them
		return []models.Service{}, nil
	}
	ownerTags := make(map[int64][]string)
	kept := make([]models.Service, 0, len(services))
	for _, svc := range services {
		tags, ok := ownerTags[svc.AccountID]
		if !ok {
			hashtags, err := c.Store.AccountHashtags(ctx, svc.AccountID)
			if err != nil {
				return nil, fmt.Errorf("account %d hashtags: %w", svc.AccountID, err)
			}
			tags = make([]string, 0, len(hashtags))
			for _, h := range hashtags {
				tags = append(tags, h.Tag)
			}
			ownerTags[svc.AccountID] = tags
		}
		if MatchesAnyTag(tags, wanted) {
			kept = append(kept, svc)
		}
	}
	return kept, nil
}

// sortServices orders in place. Relevance has no scoring function and keeps
// the store's creation order.
func (c *Composer) sortServices(ctx context.Context, services []models.Service, opt models.SortOption) error {
	switch opt {
	case models.SortPriceLow:
		sort.SliceStable(services, func(i, j int) bool {
			return services[i].Price < services[j].Price
		})
	case models.SortPriceHigh:
		sort.SliceStable(services, func(i, j int) bool {
			return services[i].Price > services[j].Price
		})
	case models.SortRating:
		if len(services) < 2 {
			return nil
		}
		averages, err := c.averages(ctx, services)
		if err != nil {
			return err
		}
		sort.SliceStable(services, func(i, j int) bool {
			return averages[services[i].ID] > averages[services[j].ID]
		})
	case models.SortRelevance, "":
	default:
		return models.ErrInvalidSort
	}
	return nil
}

func (c *Composer) averages(ctx context.Context, services []models.Service) (map[int64]float64, error) {
	out := make(map[int64]float64, len(services))
	for _, svc := range services {
		if _, ok := out[svc.ID]; ok {
			continue
		}
		reviews, err := c.Store.ReviewsForService(ctx, svc.ID)
		if err != nil {
			return nil, fmt.Errorf("service %d reviews: %w", svc.ID, err)
		}
		out[svc.ID] = AverageRating(reviews)
	}
	return out, nil
}
