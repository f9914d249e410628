package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"servicehub/internal/models"
	"servicehub/internal/search"
)

// SearchService is the query surface over the search composer.
type SearchService struct {
	Composer *search.Composer
	Store    search.RecordStore
}

func NewSearchService(store search.RecordStore) *SearchService {
	return &SearchService{Composer: search.NewComposer(store), Store: store}
}

// SearchServices is the keyword and price search, in creation order.
func (s *SearchService) SearchServices(ctx context.Context, keyword string, minPrice, maxPrice *int64) ([]models.Service, error) {
	return s.Composer.Search(ctx, search.Criteria{
		Keyword:  keyword,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     models.SortRelevance,
	})
}

// AdvancedSearch applies every structured filter. ServiceType is ignored.
func (s *SearchService) AdvancedSearch(ctx context.Context, req models.ServiceSearchRequest) ([]models.Service, error) {
	return s.Composer.Search(ctx, criteriaFrom(req))
}

func criteriaFrom(req models.ServiceSearchRequest) search.Criteria {
	return search.Criteria{
		Keyword:  req.Keyword,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Hashtags: req.Hashtags,
		Sort:     req.Sort,
	}
}

// GlobalSearch looks up the services, hashtags and accounts groups for query
// in parallel. Groups outside filter are left nil. Structured filters, when
// present, drive the services group.
func (s *SearchService) GlobalSearch(ctx context.Context, query string, filter models.FilterType, structured models.ServiceSearchRequest) (models.GlobalSearchResponse, error) {
	var (
		resp     models.GlobalSearchResponse
		services []models.Service
		hashtags []models.Hashtag
		accounts []models.AccountSummary
	)
	tag := models.NormalizeTag(query)

	g, gctx := errgroup.WithContext(ctx)
	if filter.Includes(models.FilterServices) {
		crit := search.Criteria{Keyword: query, Sort: models.SortRelevance}
		if structured.HasStructuredFilters() {
			structured.Keyword = query
			crit = criteriaFrom(structured)
		}
		g.Go(func() error {
			var err error
			services, err = s.Composer.Search(gctx, crit)
			return err
		})
	}
	if filter.Includes(models.FilterHashtags) {
		g.Go(func() error {
			var err error
			hashtags, err = s.Store.SearchHashtags(gctx, tag)
			if err != nil {
				return fmt.Errorf("search hashtags: %w", err)
			}
			return nil
		})
	}
	if filter.Includes(models.FilterAccounts) {
		g.Go(func() error {
			if tag == "" {
				accounts = []models.AccountSummary{}
				return nil
			}
			var err error
			accounts, err = s.Store.AccountsByHashtag(gctx, tag)
			if err != nil {
				return fmt.Errorf("accounts by hashtag: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.GlobalSearchResponse{}, err
	}

	if services == nil {
		services = []models.Service{}
	}
	if hashtags == nil {
		hashtags = []models.Hashtag{}
	}
	if accounts == nil {
		accounts = []models.AccountSummary{}
	}
	if filter.Includes(models.FilterServices) {
		resp.Services = &services
	}
	if filter.Includes(models.FilterHashtags) {
		resp.Hashtags = &hashtags
	}
	if filter.Includes(models.FilterAccounts) {
		resp.Accounts = &accounts
	}
	return resp, nil
}
