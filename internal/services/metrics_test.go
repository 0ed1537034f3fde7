package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"folio/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupMetrics(t *testing.T) (*MetricsService, *repository.AnalyticsStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewAnalyticsStore(rdb)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewMetricsService(store, logger), store
}

func TestMetricsService_EmptyBackingDocs(t *testing.T) {
	svc, _ := setupMetrics(t)

	snap := svc.GetAnalyticsData(context.Background())

	assert.Equal(t, Totals{}, snap.Totals)
	assert.Empty(t, snap.Sections)
	assert.Empty(t, snap.Links)
	assert.Empty(t, snap.DailySeries)
	assert.Equal(t, UserRollups{}, snap.UserRollups)
	assert.NotNil(t, snap.Sections)
	assert.NotNil(t, snap.DailySeries)
}

func TestMetricsService_Snapshot(t *testing.T) {
	svc, store := setupMetrics(t)
	ctx := context.Background()

	assert.NoError(t, store.IncrField(ctx, repository.DocTotals, "totalViews", 40))
	assert.NoError(t, store.IncrField(ctx, repository.DocTotals, "totalClicks", 8))
	assert.NoError(t, store.IncrField(ctx, repository.DocSections, "about", 5))
	assert.NoError(t, store.IncrField(ctx, repository.DocLinks, "github", 3))

	// Seed daily buckets out of order; the series must come back sorted.
	for _, d := range []struct {
		date  string
		views int64
	}{
		{"2025-03-11", 20},
		{"2025-03-09", 5},
		{"2025-03-10", 15},
	} {
		assert.NoError(t, store.IncrField(ctx, repository.DailyDoc(d.date), "views", d.views))
		assert.NoError(t, store.TouchDay(ctx, d.date))
	}

	snap := svc.GetAnalyticsData(ctx)

	assert.Equal(t, int64(40), snap.Totals.TotalViews)
	assert.Equal(t, int64(8), snap.Totals.TotalClicks)
	assert.Equal(t, int64(5), snap.Sections["about"])
	assert.Equal(t, int64(3), snap.Links["github"])

	dates := make([]string, 0, len(snap.DailySeries))
	for _, p := range snap.DailySeries {
		dates = append(dates, p.Date)
	}
	assert.Equal(t, []string{"2025-03-09", "2025-03-10", "2025-03-11"}, dates)
	assert.Equal(t, int64(5), snap.DailySeries[0].Views)
	// Absent numeric fields default to 0.
	assert.Equal(t, int64(0), snap.DailySeries[0].Clicks)
}

func TestMetricsService_SkipsNonDateIndexEntries(t *testing.T) {
	svc, store := setupMetrics(t)
	ctx := context.Background()

	assert.NoError(t, store.TouchDay(ctx, "2025-03-10"))
	assert.NoError(t, store.TouchDay(ctx, "garbage"))

	snap := svc.GetAnalyticsData(ctx)
	assert.Len(t, snap.DailySeries, 1)
	assert.Equal(t, "2025-03-10", snap.DailySeries[0].Date)
}

func TestBuildUserRollups(t *testing.T) {
	// Wednesday 2025-03-12; week starts Sunday 2025-03-09.
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

	lastSeen := map[string]string{
		"a": "2025-03-12", // today, this week, this month
		"b": "2025-03-11", // yesterday, this week, this month
		"c": "2025-03-09", // this week (Sunday), this month
		"d": "2025-03-08", // last week, this month
		"e": "2025-03-02", // last week, this month
		"f": "2025-02-27", // last month only
		"g": "2024-12-31", // out of every window
		"h": "not-a-date", // ignored
	}

	r := BuildUserRollups(lastSeen, now)

	assert.Equal(t, 1, r.Today)
	assert.Equal(t, 1, r.Yesterday)
	assert.Equal(t, 3, r.ThisWeek)
	assert.Equal(t, 2, r.LastWeek)
	assert.Equal(t, 5, r.ThisMonth)
	assert.Equal(t, 1, r.LastMonth)
}

func TestBuildUserRollups_JanuaryRollover(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	lastSeen := map[string]string{
		"a": "2025-01-10", // this month
		"b": "2024-12-20", // last month (previous year)
	}

	r := BuildUserRollups(lastSeen, now)
	assert.Equal(t, 1, r.ThisMonth)
	assert.Equal(t, 1, r.LastMonth)
}

func TestMetricsService_RecentErrors(t *testing.T) {
	svc, store := setupMetrics(t)
	ctx := context.Background()

	assert.NoError(t, store.PushRecentError(ctx, `{"message":"boom","component":"carousel","at":"2025-03-10T12:00:00Z"}`))
	assert.NoError(t, store.PushRecentError(ctx, `not-json`))

	snap := svc.GetAnalyticsData(ctx)
	assert.Len(t, snap.RecentErrors, 1)
	assert.Equal(t, "boom", snap.RecentErrors[0].Message)
	assert.Equal(t, "carousel", snap.RecentErrors[0].Component)
}
