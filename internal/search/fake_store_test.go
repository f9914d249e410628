package search

import (
	"context"
	"strings"
	"time"

	"servicehub/internal/models"
)

type fakeStore struct {
	services    []models.Service
	tags        map[int64][]string
	reviews     []models.Review
	accounts    map[int64]models.AccountSummary
	tagLookups  int
	listErr     error
	reviewCalls map[int64]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tags:        map[int64][]string{},
		accounts:    map[int64]models.AccountSummary{},
		reviewCalls: map[int64]int{},
	}
}

func (f *fakeStore) addService(id, accountID int64, title, description string, price int64) models.Service {
	svc := models.Service{
		ID:          id,
		AccountID:   accountID,
		Title:       title,
		Description: description,
		Price:       price,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, int(id), 0, time.UTC),
	}
	f.services = append(f.services, svc)
	return svc
}

func (f *fakeStore) addReview(serviceID int64, rating int) {
	f.reviews = append(f.reviews, models.Review{
		ID:        int64(len(f.reviews) + 1),
		ServiceID: serviceID,
		Rating:    rating,
	})
}

func (f *fakeStore) ListServices(ctx context.Context) ([]models.Service, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Service, len(f.services))
	copy(out, f.services)
	return out, nil
}

func (f *fakeStore) AccountHashtags(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	f.tagLookups++
	var out []models.Hashtag
	for i, t := range f.tags[accountID] {
		out = append(out, models.Hashtag{ID: int64(i + 1), Tag: t})
	}
	return out, nil
}

func (f *fakeStore) ReviewsForService(ctx context.Context, serviceID int64) ([]models.Review, error) {
	f.reviewCalls[serviceID]++
	var out []models.Review
	for _, r := range f.reviews {
		if r.ServiceID == serviceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ReviewsForAccount(ctx context.Context, accountID int64) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) AccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	var out []models.AccountSummary
	for id, tags := range f.tags {
		for _, t := range tags {
			if t == tag {
				out = append(out, f.accounts[id])
			}
		}
	}
	return out, nil
}

func (f *fakeStore) SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error) {
	var out []models.Hashtag
	for _, tags := range f.tags {
		for _, t := range tags {
			if strings.Contains(t, query) {
				out = append(out, models.Hashtag{Tag: t})
			}
		}
	}
	return out, nil
}
