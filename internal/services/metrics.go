package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"folio/internal/repository"

	"golang.org/x/sync/errgroup"
)

type Totals struct {
	TotalViews       int64 `json:"total_views"`
	TotalClicks      int64 `json:"total_clicks"`
	TotalDownloads   int64 `json:"total_downloads"`
	TotalResumeOpens int64 `json:"total_resume_opens"`
}

type DailyPoint struct {
	Date        string `json:"date"`
	Views       int64  `json:"views"`
	Clicks      int64  `json:"clicks"`
	Downloads   int64  `json:"downloads"`
	ResumeOpens int64  `json:"resume_opens"`
	UniqueUsers int64  `json:"unique_users"`
}

// UserRollups counts distinct visitor IDs whose *last-seen* date falls in
// each window. It answers "how many visitors were last active then", not "how
// many visits happened then".
type UserRollups struct {
	Today     int `json:"today"`
	Yesterday int `json:"yesterday"`
	ThisWeek  int `json:"this_week"`
	LastWeek  int `json:"last_week"`
	ThisMonth int `json:"this_month"`
	LastMonth int `json:"last_month"`
}

type ErrorEntry struct {
	Message   string `json:"message"`
	Stack     string `json:"stack,omitempty"`
	Component string `json:"component"`
	At        string `json:"at"`
}

type Snapshot struct {
	Totals       Totals           `json:"totals"`
	Sections     map[string]int64 `json:"sections"`
	Links        map[string]int64 `json:"links"`
	DailySeries  []DailyPoint     `json:"daily_series"`
	UserRollups  UserRollups      `json:"user_rollups"`
	Devices      map[string]int64 `json:"devices"`
	Traffic      map[string]int64 `json:"traffic"`
	Blog         map[string]int64 `json:"blog"`
	Performance  map[string]int64 `json:"performance"`
	Errors       map[string]int64 `json:"errors"`
	RecentErrors []ErrorEntry     `json:"recent_errors"`
}

// MetricsService reconstructs the full analytics snapshot from the raw
// documents. It never returns an error: whatever cannot be read comes back
// zeroed so the dashboard renders a "no data" state instead of crashing.
type MetricsService struct {
	store  *repository.AnalyticsStore
	logger *slog.Logger
	now    func() time.Time
}

func NewMetricsService(store *repository.AnalyticsStore, logger *slog.Logger) *MetricsService {
	return &MetricsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *MetricsService) GetAnalyticsData(ctx context.Context) Snapshot {
	snap := emptySnapshot()

	var users map[string]string
	var rawErrors []string

	g, gctx := errgroup.WithContext(ctx)
	fetchCounters := func(doc string, dst *map[string]int64) {
		g.Go(func() error {
			fields, err := s.store.GetDoc(gctx, doc)
			if err != nil {
				return err
			}
			*dst = toCounters(fields)
			return nil
		})
	}

	var totalsDoc map[string]int64
	fetchCounters(repository.DocTotals, &totalsDoc)
	fetchCounters(repository.DocSections, &snap.Sections)
	fetchCounters(repository.DocLinks, &snap.Links)
	fetchCounters(repository.DocDevices, &snap.Devices)
	fetchCounters(repository.DocTraffic, &snap.Traffic)
	fetchCounters(repository.DocBlog, &snap.Blog)
	fetchCounters(repository.DocPerformance, &snap.Performance)
	fetchCounters(repository.DocErrors, &snap.Errors)

	g.Go(func() error {
		fields, err := s.store.GetDoc(gctx, repository.DocUsers)
		if err != nil {
			return err
		}
		users = fields
		return nil
	})
	g.Go(func() error {
		var err error
		rawErrors, err = s.store.RecentErrors(gctx, 20)
		return err
	})

	var series []DailyPoint
	g.Go(func() error {
		var err error
		series, err = s.buildDailySeries(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to read analytics documents", "error", err)
		return emptySnapshot()
	}

	snap.Totals = Totals{
		TotalViews:       totalsDoc["totalViews"],
		TotalClicks:      totalsDoc["totalClicks"],
		TotalDownloads:   totalsDoc["totalDownloads"],
		TotalResumeOpens: totalsDoc["totalResumeOpens"],
	}
	snap.DailySeries = series
	snap.UserRollups = BuildUserRollups(users, s.now())

	for _, raw := range rawErrors {
		var entry ErrorEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		snap.RecentErrors = append(snap.RecentErrors, entry)
	}

	return snap
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Sections:     map[string]int64{},
		Links:        map[string]int64{},
		DailySeries:  []DailyPoint{},
		Devices:      map[string]int64{},
		Traffic:      map[string]int64{},
		Blog:         map[string]int64{},
		Performance:  map[string]int64{},
		Errors:       map[string]int64{},
		RecentErrors: []ErrorEntry{},
	}
}

func (s *MetricsService) buildDailySeries(ctx context.Context) ([]DailyPoint, error) {
	days, err := s.store.Days(ctx)
	if err != nil {
		return nil, err
	}

	series := make([]DailyPoint, 0, len(days))
	for _, day := range days {
		// Defensive: the index should only hold ISO dates.
		if _, err := time.Parse(DateLayout, day); err != nil {
			continue
		}
		fields, err := s.store.GetDoc(ctx, repository.DailyDoc(day))
		if err != nil {
			return nil, err
		}
		series = append(series, DailyPoint{
			Date:        day,
			Views:       atoi64(fields["views"]),
			Clicks:      atoi64(fields["clicks"]),
			Downloads:   atoi64(fields["downloads"]),
			ResumeOpens: atoi64(fields["resumeOpens"]),
			UniqueUsers: atoi64(fields["uniqueUsers"]),
		})
	}

	// ISO dates sort lexicographically in chronological order.
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

// BuildUserRollups buckets last-seen dates into named windows. Weeks start on
// Sunday (today minus weekday, zero time); months compare calendar month and
// year, with the December to January rollover handled explicitly.
func BuildUserRollups(lastSeen map[string]string, now time.Time) UserRollups {
	var r UserRollups

	today := now.Format(DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	lastMonth := now.Month() - 1
	lastMonthYear := now.Year()
	if now.Month() == time.January {
		lastMonth = time.December
		lastMonthYear--
	}

	for _, dateStr := range lastSeen {
		d, err := time.ParseInLocation(DateLayout, dateStr, now.Location())
		if err != nil {
			continue
		}

		if dateStr == today {
			r.Today++
		}
		if dateStr == yesterday {
			r.Yesterday++
		}
		if !d.Before(weekStart) {
			r.ThisWeek++
		} else if !d.Before(lastWeekStart) {
			r.LastWeek++
		}
		if d.Month() == now.Month() && d.Year() == now.Year() {
			r.ThisMonth++
		} else if d.Month() == lastMonth && d.Year() == lastMonthYear {
			r.LastMonth++
		}
	}

	return r
}

// toCounters converts a raw document into integer counters, defaulting
// non-numeric fields to 0.
func toCounters(fields map[string]string) map[string]int64 {
	out := make(map[string]int64, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[k] = atoi64(v)
	}
	return out
}

func atoi64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
