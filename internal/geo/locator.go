package geo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"servicehub/internal/models"
)

const accountsKey = "accounts:geo"

// Hit is one account returned by a radius query.
type Hit struct {
	AccountID  int64
	DistanceKm float64
}

// AccountLocator indexes account coordinates in a Redis GEO set.
type AccountLocator struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewAccountLocator(rdb *redis.Client, log zerolog.Logger) *AccountLocator {
	return &AccountLocator{rdb: rdb, log: log}
}

func memberName(accountID int64) string {
	return fmt.Sprintf("account:%d", accountID)
}

func parseMember(member string) (int64, error) {
	id, ok := strings.CutPrefix(member, "account:")
	if !ok {
		return 0, fmt.Errorf("invalid member %q", member)
	}
	return strconv.ParseInt(id, 10, 64)
}

// Update stores or moves the account's point.
func (l *AccountLocator) Update(ctx context.Context, accountID int64, p models.GeoPoint) error {
	if !p.Valid() {
		return models.ErrInvalidLocation
	}
	return l.rdb.GeoAdd(ctx, accountsKey, &redis.GeoLocation{
		Name:      memberName(accountID),
		Longitude: p.Longitude,
		Latitude:  p.Latitude,
	}).Err()
}

func (l *AccountLocator) Remove(ctx context.Context, accountID int64) error {
	return l.rdb.ZRem(ctx, accountsKey, memberName(accountID)).Err()
}

// Nearby returns accounts within radiusKm of center, closest first. A limit
// of zero means no limit.
func (l *AccountLocator) Nearby(ctx context.Context, center models.GeoPoint, radiusKm float64, limit int) ([]Hit, error) {
	if !center.Valid() || radiusKm <= 0 {
		return nil, models.ErrInvalidLocation
	}
	res, err := l.rdb.GeoSearchLocation(ctx, accountsKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  center.Longitude,
			Latitude:   center.Latitude,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithDist: true,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return []Hit{}, nil
	}
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res))
	for _, item := range res {
		id, err := parseMember(item.Name)
		if err != nil {
			l.log.Warn().Err(err).Msg("skip geo member")
			continue
		}
		hits = append(hits, Hit{AccountID: id, DistanceKm: item.Dist})
	}
	return hits, nil
}
