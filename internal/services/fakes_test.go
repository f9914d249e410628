package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"servicehub/internal/geo"
	"servicehub/internal/models"
)

type memAccounts struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
	deleted  []int64
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: map[int64]models.Account{}}
}

func (m *memAccounts) CreateAccount(ctx context.Context, a models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	m.accounts[a.ID] = a
	return a, nil
}

func (m *memAccounts) GetAccountByID(ctx context.Context, id int64) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return models.Account{}, models.ErrAccountNotFound
	}
	return a, nil
}

func (m *memAccounts) find(match func(models.Account) bool) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if match(a) {
			return a, nil
		}
	}
	return models.Account{}, models.ErrAccountNotFound
}

func (m *memAccounts) GetAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	return m.find(func(a models.Account) bool { return a.Username == username })
}

func (m *memAccounts) GetAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return m.find(func(a models.Account) bool { return a.Email == email })
}

func (m *memAccounts) GetAccountByLogin(ctx context.Context, login string) (models.Account, error) {
	return m.find(func(a models.Account) bool { return a.Username == login || a.Email == login })
}

func (m *memAccounts) UpdateAccount(ctx context.Context, a models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID]; !ok {
		return models.Account{}, models.ErrAccountNotFound
	}
	m.accounts[a.ID] = a
	return a, nil
}

func (m *memAccounts) DeleteAccount(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return models.ErrAccountNotFound
	}
	delete(m.accounts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type memSessions struct {
	sessions map[string]int64
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]int64{}}
}

func (m *memSessions) SaveSession(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	m.sessions[token] = accountID
	return nil
}

func (m *memSessions) GetSession(ctx context.Context, token string) (int64, error) {
	id, ok := m.sessions[token]
	if !ok {
		return 0, models.ErrSessionNotFound
	}
	return id, nil
}

func (m *memSessions) DeleteSession(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *memSessions) DeleteAccountSessions(ctx context.Context, accountID int64) error {
	for token, id := range m.sessions {
		if id == accountID {
			delete(m.sessions, token)
		}
	}
	return nil
}

type fakeLocator struct {
	points map[int64]models.GeoPoint
}

func newFakeLocator() *fakeLocator {
	return &fakeLocator{points: map[int64]models.GeoPoint{}}
}

func (l *fakeLocator) Update(ctx context.Context, accountID int64, p models.GeoPoint) error {
	l.points[accountID] = p
	return nil
}

func (l *fakeLocator) Remove(ctx context.Context, accountID int64) error {
	delete(l.points, accountID)
	return nil
}

func (l *fakeLocator) Nearby(ctx context.Context, center models.GeoPoint, radiusKm float64, limit int) ([]geo.Hit, error) {
	var hits []geo.Hit
	for id, p := range l.points {
		if d := geo.DistanceKm(center, p); d <= radiusKm {
			hits = append(hits, geo.Hit{AccountID: id, DistanceKm: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].AccountID < hits[j].AccountID })
	return hits, nil
}

type fakeTokens struct {
	n int
}

func (f *fakeTokens) NewJWT(accountID int64, ttl time.Duration) (string, error) {
	return fmt.Sprintf("jwt-%d", accountID), nil
}

func (f *fakeTokens) NewRefreshToken() (string, error) {
	f.n++
	return fmt.Sprintf("refresh-%d", f.n), nil
}

type memServices struct {
	mu       sync.Mutex
	nextID   int64
	services []models.Service
}

func (m *memServices) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Date(2024, 1, 1, 0, 0, int(s.ID), 0, time.UTC)
	m.services = append(m.services, s)
	return s, nil
}

func (m *memServices) GetServiceByID(ctx context.Context, id int64) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.services {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Service{}, models.ErrServiceNotFound
}

func (m *memServices) GetServicesByAccountID(ctx context.Context, accountID int64) ([]models.Service, error) {
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

func (m *memServices) ListServices(ctx context.Context) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Service, len(m.services))
	copy(out, m.services)
	return out, nil
}

func (m *memServices) UpdateService(ctx context.Context, s models.Service) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.services {
		if m.services[i].ID == s.ID {
			m.services[i] = s
			return s, nil
		}
	}
	return models.Service{}, models.ErrServiceNotFound
}

func (m *memServices) DeleteService(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.services {
		if m.services[i].ID == id {
			m.services = append(m.services[:i], m.services[i+1:]...)
			return nil
		}
	}
	return models.ErrServiceNotFound
}

type memReviews struct {
	mu          sync.Mutex
	nextID      int64
	reviews     []models.Review
	createCalls int
}

func (m *memReviews) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	for _, r := range m.reviews {
		if r.ClientID == rev.ClientID && r.ServiceID == rev.ServiceID {
			return models.Review{}, models.ErrAlreadyReviewed
		}
	}
	m.nextID++
	rev.ID = m.nextID
	m.reviews = append(m.reviews, rev)
	return rev, nil
}

func (m *memReviews) GetReviewByID(ctx context.Context, id int64) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Review{}, models.ErrReviewNotFound
}

func (m *memReviews) filter(match func(models.Review) bool) []models.Review {
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

func (m *memReviews) GetReviewsByServiceID(ctx context.Context, serviceID int64) ([]models.Review, error) {
	return m.filter(func(r models.Review) bool { return r.ServiceID == serviceID }), nil
}

func (m *memReviews) GetReviewsByAccountID(ctx context.Context, accountID int64) ([]models.Review, error) {
	return m.filter(func(r models.Review) bool { return r.AccountID == accountID }), nil
}

func (m *memReviews) UpdateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reviews {
		if m.reviews[i].ID == rev.ID {
			m.reviews[i] = rev
			return rev, nil
		}
	}
	return models.Review{}, models.ErrReviewNotFound
}

func (m *memReviews) DeleteReview(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reviews {
		if m.reviews[i].ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return models.ErrReviewNotFound
}

type recordingNotifier struct {
	updates []models.RatingUpdate
}

func (n *recordingNotifier) RatingChanged(u models.RatingUpdate) {
	n.updates = append(n.updates, u)
}

type memHashtags struct {
	mu       sync.Mutex
	links    map[int64][]string
	accounts map[int64]models.AccountSummary
}

func newMemHashtags() *memHashtags {
	return &memHashtags{links: map[int64][]string{}, accounts: map[int64]models.AccountSummary{}}
}

func (m *memHashtags) AttachHashtags(ctx context.Context, accountID int64, tags []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	added := []string{}
	for _, t := range tags {
		if !contains(m.links[accountID], t) {
			m.links[accountID] = append(m.links[accountID], t)
			added = append(added, t)
		}
	}
	return added, nil
}

func (m *memHashtags) DetachHashtag(ctx context.Context, accountID int64, tag string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := m.links[accountID]
	for i, t := range tags {
		if t == tag {
			m.links[accountID] = append(tags[:i], tags[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memHashtags) GetHashtagsByAccountID(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Hashtag{}
	for _, t := range m.links[accountID] {
		out = append(out, models.Hashtag{Tag: t})
	}
	return out, nil
}

func (m *memHashtags) GetAccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AccountSummary{}
	for id, tags := range m.links {
		if contains(tags, tag) {
			out = append(out, m.accounts[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHashtags) SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []models.Hashtag{}
	for _, tags := range m.links {
		for _, t := range tags {
			if strings.Contains(t, query) && !seen[t] {
				seen[t] = true
				out = append(out, models.Hashtag{Tag: t})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// memRecords exposes the in-memory stores through search.RecordStore.
type memRecords struct {
	services *memServices
	reviews  *memReviews
	hashtags *memHashtags
}

func (r *memRecords) ListServices(ctx context.Context) ([]models.Service, error) {
	return r.services.ListServices(ctx)
}

func (r *memRecords) AccountHashtags(ctx context.Context, accountID int64) ([]models.Hashtag, error) {
	return r.hashtags.GetHashtagsByAccountID(ctx, accountID)
}

func (r *memRecords) ReviewsForService(ctx context.Context, serviceID int64) ([]models.Review, error) {
	return r.reviews.GetReviewsByServiceID(ctx, serviceID)
}

func (r *memRecords) ReviewsForAccount(ctx context.Context, accountID int64) ([]models.Review, error) {
	return r.reviews.GetReviewsByAccountID(ctx, accountID)
}

func (r *memRecords) AccountsByHashtag(ctx context.Context, tag string) ([]models.AccountSummary, error) {
	return r.hashtags.GetAccountsByHashtag(ctx, tag)
}

func (r *memRecords) SearchHashtags(ctx context.Context, query string) ([]models.Hashtag, error) {
	return r.hashtags.SearchHashtags(ctx, query)
}
