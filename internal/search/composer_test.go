package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/internal/models"
)

func ids(services []models.Service) []int64 {
	out := make([]int64, 0, len(services))
	for _, s := range services {
		out = append(out, s.ID)
	}
	return out
}

func TestComposerPriceScenario(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "A", "service a", 1000)
	store.addService(2, 10, "B", "service b", 5000)
	c := NewComposer(store)
	ctx := context.Background()

	got, err := c.Search(ctx, Criteria{MinPrice: int64Ptr(2000)})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(got))

	got, err = c.Search(ctx, Criteria{Sort: models.SortPriceHigh})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(got))

	got, err = c.Search(ctx, Criteria{Sort: models.SortPriceLow})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestComposerFiltersAreConjunctive(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "Cheap plumbing", "", 500)
	store.addService(2, 10, "Luxury plumbing", "", 9000)
	store.addService(3, 10, "Cheap painting", "", 400)

	got, err := NewComposer(store).Search(context.Background(), Criteria{
		Keyword:  "plumbing",
		MaxPrice: int64Ptr(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))
}

func TestComposerRelevanceKeepsCreationOrder(t *testing.T) {
	store := newFakeStore()
	store.addService(3, 10, "c", "", 300)
	store.addService(1, 10, "a", "", 100)
	store.addService(2, 10, "b", "", 200)

	got, err := NewComposer(store).Search(context.Background(), Criteria{Sort: models.SortRelevance})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids(got))
}

func TestComposerPriceSortIsStable(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "a", "", 500)
	store.addService(2, 10, "b", "", 100)
	store.addService(3, 10, "c", "", 500)
	store.addService(4, 10, "d", "", 100)
	store.addService(5, 10, "e", "", 500)
	c := NewComposer(store)

	low, err := c.Search(context.Background(), Criteria{Sort: models.SortPriceLow})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 1, 3, 5}, ids(low))

	high, err := c.Search(context.Background(), Criteria{Sort: models.SortPriceHigh})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 5, 2, 4}, ids(high))
}

func TestComposerRatingSort(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "no reviews", "", 100)
	store.addService(2, 10, "average four", "", 100)
	store.addService(3, 11, "average five", "", 100)
	store.addService(4, 11, "average four too", "", 100)
	store.addReview(2, 5)
	store.addReview(2, 3)
	store.addReview(3, 5)
	store.addReview(4, 4)

	got, err := NewComposer(store).Search(context.Background(), Criteria{Sort: models.SortRating})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 4, 1}, ids(got))
	for id, calls := range store.reviewCalls {
		assert.Equal(t, 1, calls, "reviews of service %d fetched more than once", id)
	}
}

func TestComposerHashtagOrSemantics(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "owned by a,b", "", 100)
	store.addService(2, 11, "owned by z", "", 100)
	store.tags[10] = []string{"a", "b"}
	store.tags[11] = []string{"z"}
	c := NewComposer(store)

	got, err := c.Search(context.Background(), Criteria{Hashtags: []string{"b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))

	got, err = c.Search(context.Background(), Criteria{Hashtags: []string{"c", "d"}})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestComposerHashtagsAreNormalized(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "x", "", 100)
	store.tags[10] = []string{"python"}

	got, err := NewComposer(store).Search(context.Background(), Criteria{Hashtags: []string{" #Python "}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))
}

func TestComposerUnknownHashtagYieldsEmpty(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "x", "", 100)
	store.tags[10] = []string{"go"}

	got, err := NewComposer(store).Search(context.Background(), Criteria{Hashtags: []string{"python"}})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestComposerOwnerTagsFetchedOncePerOwner(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "a", "", 100)
	store.addService(2, 10, "b", "", 100)
	store.addService(3, 11, "c", "", 100)
	store.tags[10] = []string{"go"}

	_, err := NewComposer(store).Search(context.Background(), Criteria{Hashtags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, 2, store.tagLookups)
}

func TestComposerIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "alpha", "", 300)
	store.addService(2, 11, "beta", "", 300)
	store.addService(3, 10, "gamma", "", 100)
	store.addReview(1, 2)
	store.addReview(3, 2)
	store.tags[10] = []string{"x"}
	store.tags[11] = []string{"x"}
	c := NewComposer(store)

	for _, opt := range []models.SortOption{models.SortRelevance, models.SortPriceLow, models.SortPriceHigh, models.SortRating} {
		crit := Criteria{Hashtags: []string{"x"}, Sort: opt}
		first, err := c.Search(context.Background(), crit)
		require.NoError(t, err)
		second, err := c.Search(context.Background(), crit)
		require.NoError(t, err)
		assert.Equal(t, first, second, "sort %s", opt)
	}
}

func TestComposerEmptyStore(t *testing.T) {
	got, err := NewComposer(newFakeStore()).Search(context.Background(), Criteria{Keyword: "anything"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComposerStoreErrorPropagates(t *testing.T) {
	store := newFakeStore()
	boom := errors.New("connection refused")
	store.listErr = boom

	_, err := NewComposer(store).Search(context.Background(), Criteria{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestComposerUnknownSort(t *testing.T) {
	store := newFakeStore()
	store.addService(1, 10, "a", "", 1)
	store.addService(2, 10, "b", "", 2)

	_, err := NewComposer(store).Search(context.Background(), Criteria{Sort: "newest"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}
