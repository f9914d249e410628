package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"servicehub/internal/models"
)

// memStore backs every handler test. It satisfies the service-layer store
// interfaces and search.RecordStore.
type memStore struct {
	mu       sync.Mutex
	services []models.Service
	reviews  []models.Review
	links    map[int64][]string
	accounts map[int64]models.AccountSummary
}

func newMemStore() *memStore {
	return &memStore{links: map[int64][]string{}, accounts: map[int64]models.AccountSummary{}}
}

func (m *memStore) addService(accountID int64, title string, price int64) models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc := models.Service{
		ID:        int64(len(m.services) + 1),
		AccountID: accountID,
		Title:     title,
		Price:     price,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, len(m.services), 0, time.UTC),
	}
	m.services = append(m.services, svc)
	return svc
}

func (m *memStore) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	return m.addService(s.AccountID, s.Title, s.Price), nil
}

func (m *memStore) GetServiceByID(ctx context.Context, id int64) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.services {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Service{}, models.ErrServiceNotFound
}

func (m *memStore) GetServicesByAccountID(ctx context.Context, accountID int64) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Service{}
	for _, s := range m.services {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) UpdateService(ctx context.Context, s models.Service) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[s.ID-1] = s
	return s, nil
}

func (m *memStore) DeleteService(ctx context.Context, id int64) error {
	return nil
}

func (m *memStore) ListServices(ctx context.Context) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Service, len(m.services))
	copy(out, m.services)
	return out, nil
}

func (m *memStore) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ClientID == rev.ClientID && r.ServiceID == rev.ServiceID {
			return models.Review{}, models.ErrAlreadyReviewed
		}
	}
	rev.ID = int64(len(m.reviews) + 1)
	m.reviews = append(m.reviews, rev)
	return rev, nil
}

func (m *memStore) GetReviewByID(ctx context.Context, id int64) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Review{}, models.ErrReviewNotFound
}

func (m *memStore) reviewsWhere(match func(models.Review) bool) []models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, r := range m.reviews {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *memStore) GetReviewsByServiceID(ctx context.Context, serviceID int64) ([]models.Review, error) {
	return m.reviewsWhere(func(r models.Review) bool { return r.ServiceID == serviceID }), nil
}

func (m *memStore) GetReviewsByAccountID(ctx context.Context, accountID int64) ([]models.Review, error) {
	return m.reviewsWhere(func(r models.Review) bool { return r.AccountID == accountID }), nil
}

func (m *memStore) UpdateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	return rev, nil
}

func (m *memStore) DeleteReview(ctx context.Context, id int64) error {
	return nil
}

func (m *memStore) ReviewsForService(ctx context.Context, serviceID int64) ([]models.Review, error) {
	return m.GetReviewsByServiceID(ctx, serviceID)
}

func (m *memStore) ReviewsForAccount(ctx context.Context, accountID int64) ([]models.Review, error) {
	return m.GetReviewsByAccountID(ctx, accountID)
}

func (m *memStore) AttachHashtags(ctx context.Context, accountID int64, tags []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	added := []string{}
	for _, t := range tags {
		exists := false
		for _, have := range m.links[accountID] {
			exists = exists || have == t
		}
		if !exists {
			m.links[accountID] = append(m.links[accountID], t)
			added = append(added, t)
		}
	}
	return added, nil
}

func (m *memStore) DetachHashtag(ctx context.Context, accountID int64, tag string) (bool, error) {
	return false, nil
}

func (m *memStore) GetHashtagsByAccountID(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Hashtag{}
	for _, t := range m.links[accountID] {
		out = append(out, models.Hashtag{Tag: t})
	}
	return out, nil
}

func (m *memStore) AccountHashtags(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	return m.GetHashtagsByAccountID(ctx, accountID)
}

func (m *memStore) GetAccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AccountSummary{}
	for id, tags := range m.links {
		for _, t := range tags {
			if t == tag {
				out = append(out, m.accounts[id])
			}
		}
	}
	return out, nil
}

func (m *memStore) AccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	return m.GetAccountsByHashtag(ctx, tag)
}

func (m *memStore) SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Hashtag{}
	for _, tags := range m.links {
		for _, t := range tags {
			if strings.Contains(t, query) {
				out = append(out, models.Hashtag{Tag: t})
			}
		}
	}
	return out, nil
}
