package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Analytics documents live under a single namespace with fixed keys. Counters
// are Redis hashes: HIncrBy is the atomic per-field increment, HSet the
// merge-write, HGetAll the read (a missing document reads as an empty map).
const (
	DocTotals      = "analytics:totals"
	DocSections    = "analytics:sections"
	DocLinks       = "analytics:links"
	DocUsers       = "analytics:users"
	DocDevices     = "analytics:devices"
	DocTraffic     = "analytics:traffic"
	DocBlog        = "analytics:blog"
	DocPerformance = "analytics:performance"
	DocErrors      = "analytics:errors"

	dailyPrefix    = "analytics:day:"
	visitorsPrefix = "analytics:visitors:"

	DailyIndex      = "analytics:daily:index"
	RecentErrorsKey = "analytics:errors:recent"

	// Recent error entries kept after trimming.
	recentErrorsCap = 50
)

// DailyDoc returns the per-day bucket key for an ISO date string.
func DailyDoc(date string) string {
	return dailyPrefix + date
}

func visitorSet(date string) string {
	return visitorsPrefix + date
}

type AnalyticsStore struct {
	rdb *redis.Client
}

func NewAnalyticsStore(rdb *redis.Client) *AnalyticsStore {
	return &AnalyticsStore{rdb: rdb}
}

func (s *AnalyticsStore) IncrField(ctx context.Context, doc, field string, n int64) error {
	return s.rdb.HIncrBy(ctx, doc, field, n).Err()
}

func (s *AnalyticsStore) SetField(ctx context.Context, doc, field, value string) error {
	return s.rdb.HSet(ctx, doc, field, value).Err()
}

// GetDoc reads a whole document. A missing document is an empty map, never an
// error.
func (s *AnalyticsStore) GetDoc(ctx context.Context, doc string) (map[string]string, error) {
	fields, err := s.rdb.HGetAll(ctx, doc).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", doc, err)
	}
	return fields, nil
}

// TouchDay registers a date in the daily index the first time any event lands
// on that calendar date.
func (s *AnalyticsStore) TouchDay(ctx context.Context, date string) error {
	return s.rdb.SAdd(ctx, DailyIndex, date).Err()
}

// Days returns every date that has a daily bucket, unsorted.
func (s *AnalyticsStore) Days(ctx context.Context) ([]string, error) {
	days, err := s.rdb.SMembers(ctx, DailyIndex).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read daily index: %w", err)
	}
	return days, nil
}

// MarkVisitor adds a visitor ID to the per-day visitor set. Returns true only
// on the first add for that ID and date, so two tabs racing on the same day
// cannot double-count: SADD is the atomic add-if-absent primitive.
func (s *AnalyticsStore) MarkVisitor(ctx context.Context, date, visitorID string) (bool, error) {
	added, err := s.rdb.SAdd(ctx, visitorSet(date), visitorID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark visitor: %w", err)
	}
	return added == 1, nil
}

// PushRecentError prepends a serialized error entry, keeping the list capped.
func (s *AnalyticsStore) PushRecentError(ctx context.Context, payload string) error {
	if err := s.rdb.LPush(ctx, RecentErrorsKey, payload).Err(); err != nil {
		return err
	}
	return s.rdb.LTrim(ctx, RecentErrorsKey, 0, recentErrorsCap-1).Err()
}

func (s *AnalyticsStore) RecentErrors(ctx context.Context, n int64) ([]string, error) {
	entries, err := s.rdb.LRange(ctx, RecentErrorsKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent errors: %w", err)
	}
	return entries, nil
}

// Reset wipes every analytics document, all per-day buckets and visitor sets
// named by the daily index, and the index itself. Destructive and
// irreversible.
func (s *AnalyticsStore) Reset(ctx context.Context) error {
	days, err := s.Days(ctx)
	if err != nil {
		return err
	}

	keys := []string{
		DocTotals, DocSections, DocLinks, DocUsers, DocDevices,
		DocTraffic, DocBlog, DocPerformance, DocErrors,
		DailyIndex, RecentErrorsKey,
	}
	for _, day := range days {
		keys = append(keys, DailyDoc(day), visitorSet(day))
	}

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset analytics: %w", err)
	}
	return nil
}
