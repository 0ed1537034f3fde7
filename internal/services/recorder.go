package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"folio/internal/repository"

	"github.com/mssola/user_agent"
	"golang.org/x/sync/errgroup"
)

// RecorderService turns incoming analytics events into counter increments.
// Events are queued on a buffered channel and applied by a single worker:
// callers never block and never see a store failure. A full channel drops the
// event with a warning; telemetry must not break the product.
type RecorderService struct {
	store    *repository.AnalyticsStore
	logger   *slog.Logger
	geoIP    *GeoIPService
	visitors *VisitorService
	throttle *Throttle
	events   chan Event
	now      func() time.Time
}

func NewRecorderService(store *repository.AnalyticsStore, logger *slog.Logger, geoIP *GeoIPService, visitors *VisitorService) *RecorderService {
	return &RecorderService{
		store:    store,
		logger:   logger,
		geoIP:    geoIP,
		visitors: visitors,
		throttle: NewThrottle(time.Now),
		events:   make(chan Event, 1000),
		now:      time.Now,
	}
}

func (s *RecorderService) Start(ctx context.Context) {
	s.logger.Info("Analytics recorder starting")
	s.throttle.StartSweeper(time.Hour, ctx.Done())
	for {
		select {
		case ev := <-s.events:
			s.apply(ctx, ev)
		case <-ctx.Done():
			s.logger.Info("Analytics recorder stopping")
			return
		}
	}
}

// enqueue stamps and queues an event. Fire-and-forget.
func (s *RecorderService) enqueue(ev Event) {
	if ev.At.IsZero() {
		ev.At = s.now()
	}
	select {
	case s.events <- ev:
		// Sent
	default:
		s.logger.Warn("Analytics channel full, dropping event", "kind", ev.Kind, "key", ev.Key)
	}
}

// LogSectionView counts a section becoming visible. Repeat views of the same
// section inside the throttle window are not counted.
func (s *RecorderService) LogSectionView(name string) {
	if name == "" {
		return
	}
	if !s.throttle.Allow(EventSectionView, name, viewThrottleWindow) {
		return
	}
	s.enqueue(Event{Kind: EventSectionView, Key: name})
}

func (s *RecorderService) LogLinkClick(name string) {
	if name == "" {
		return
	}
	s.enqueue(Event{Kind: EventLinkClick, Key: name})
}

func (s *RecorderService) LogDownload(fileName string) {
	if fileName == "" {
		return
	}
	s.enqueue(Event{Kind: EventDownload, Key: fileName})
}

func (s *RecorderService) LogResumeOpen() {
	if !s.throttle.Allow(EventResumeOpen, "resume", viewThrottleWindow) {
		return
	}
	s.enqueue(Event{Kind: EventResumeOpen, Key: "resume"})
}

func (s *RecorderService) LogUniqueUser(visitorID string) {
	if visitorID == "" {
		return
	}
	s.enqueue(Event{Kind: EventUniqueVisit, VisitorID: visitorID})
}

func (s *RecorderService) LogCustomEvent(category, name string, meta map[string]string) {
	if category == "" || name == "" {
		return
	}
	s.enqueue(Event{Kind: EventCustom, Category: category, Key: name, Meta: meta})
}

func (s *RecorderService) LogBlogView(slug string) {
	if slug == "" {
		return
	}
	s.enqueue(Event{Kind: EventBlogView, Key: slug})
}

func (s *RecorderService) LogBlogLike(slug string) {
	if slug == "" {
		return
	}
	s.enqueue(Event{Kind: EventBlogLike, Key: slug})
}

func (s *RecorderService) LogBlogReadTime(slug string, ms int64) {
	if slug == "" || ms <= 0 {
		return
	}
	s.enqueue(Event{Kind: EventBlogRead, Key: slug, Millis: ms})
}

func (s *RecorderService) LogPageLoad(page string, ms int64) {
	if page == "" || ms < 0 {
		return
	}
	s.enqueue(Event{Kind: EventPageLoad, Key: page, Millis: ms})
}

func (s *RecorderService) LogPageDuration(page string, ms int64) {
	if page == "" || ms <= 0 {
		return
	}
	s.enqueue(Event{Kind: EventPageDuration, Key: page, Millis: ms})
}

func (s *RecorderService) LogError(message, stack, component string) {
	if message == "" {
		return
	}
	if component == "" {
		component = "unknown"
	}
	s.enqueue(Event{Kind: EventError, Message: message, Stack: stack, Component: component})
}

// LogDeviceInfo counts a visitor's device/browser/OS once per day.
func (s *RecorderService) LogDeviceInfo(visitorID, userAgent string) {
	if visitorID == "" || userAgent == "" {
		return
	}
	if !s.throttle.Allow(EventDevice, visitorID, dailyThrottleWindow) {
		return
	}
	s.enqueue(Event{Kind: EventDevice, VisitorID: visitorID, UserAgent: userAgent})
}

// LogTrafficSource counts where a visitor came from once per day.
func (s *RecorderService) LogTrafficSource(visitorID, referrer, ip string) {
	if visitorID == "" {
		return
	}
	if !s.throttle.Allow(EventTraffic, visitorID, dailyThrottleWindow) {
		return
	}
	s.enqueue(Event{Kind: EventTraffic, VisitorID: visitorID, Referrer: referrer, IPAddress: ip})
}

// apply performs the increments for one event. The date is computed at event
// time, never at startup, so a process running across midnight rolls into the
// new bucket. Store errors are logged and swallowed.
func (s *RecorderService) apply(ctx context.Context, ev Event) {
	date := ev.At.Format(DateLayout)

	var g errgroup.Group
	incr := func(doc, field string, n int64) {
		g.Go(func() error { return s.store.IncrField(ctx, doc, field, n) })
	}
	daily := func(field string, n int64) {
		incr(repository.DailyDoc(date), field, n)
	}

	touched := true
	switch ev.Kind {
	case EventSectionView:
		incr(repository.DocTotals, "totalViews", 1)
		incr(repository.DocSections, ev.Key, 1)
		daily("views", 1)
		daily("section:"+ev.Key, 1)
	case EventLinkClick:
		incr(repository.DocTotals, "totalClicks", 1)
		incr(repository.DocLinks, ev.Key, 1)
		daily("clicks", 1)
		daily("link:"+ev.Key, 1)
	case EventDownload:
		incr(repository.DocTotals, "totalDownloads", 1)
		incr(repository.DocLinks, "download:"+ev.Key, 1)
		daily("downloads", 1)
	case EventResumeOpen:
		incr(repository.DocTotals, "totalResumeOpens", 1)
		daily("resumeOpens", 1)
	case EventUniqueVisit:
		touched = false
		s.visitors.RecordVisit(ctx, ev.VisitorID, ev.At)
	case EventCustom:
		daily("custom:"+ev.Category+":"+ev.Key, 1)
	case EventBlogView:
		incr(repository.DocBlog, "views:"+ev.Key, 1)
		touched = false
	case EventBlogLike:
		incr(repository.DocBlog, "likes:"+ev.Key, 1)
		touched = false
	case EventBlogRead:
		incr(repository.DocBlog, "readms:"+ev.Key, ev.Millis)
		incr(repository.DocBlog, "reads:"+ev.Key, 1)
		touched = false
	case EventPageLoad:
		incr(repository.DocPerformance, "load_ms:"+ev.Key, ev.Millis)
		incr(repository.DocPerformance, "load_count:"+ev.Key, 1)
		touched = false
	case EventPageDuration:
		incr(repository.DocPerformance, "duration_ms:"+ev.Key, ev.Millis)
		incr(repository.DocPerformance, "duration_count:"+ev.Key, 1)
		touched = false
	case EventError:
		incr(repository.DocErrors, "component:"+ev.Component, 1)
		g.Go(func() error {
			payload, err := json.Marshal(map[string]string{
				"message":   ev.Message,
				"stack":     ev.Stack,
				"component": ev.Component,
				"at":        ev.At.UTC().Format(time.RFC3339),
			})
			if err != nil {
				return err
			}
			return s.store.PushRecentError(ctx, string(payload))
		})
		touched = false
	case EventDevice:
		s.applyDevice(ctx, &g, ev)
		touched = false
	case EventTraffic:
		s.applyTraffic(ctx, &g, ev)
		touched = false
	default:
		s.logger.Warn("Unknown event kind", "kind", ev.Kind)
		return
	}

	if touched {
		g.Go(func() error {
			return s.store.SetField(ctx, repository.DailyDoc(date), "lastUpdated", strconv.FormatInt(ev.At.Unix(), 10))
		})
		g.Go(func() error { return s.store.TouchDay(ctx, date) })
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to record analytics event", "kind", ev.Kind, "key", ev.Key, "error", err)
	}
}

func (s *RecorderService) applyDevice(ctx context.Context, g *errgroup.Group, ev Event) {
	ua := user_agent.New(ev.UserAgent)
	browserName, _ := ua.Browser()
	if browserName == "" {
		browserName = "Unknown"
	}
	osName := ua.OS()
	if osName == "" {
		osName = "Unknown"
	}

	deviceType := "Desktop"
	if ua.Mobile() {
		deviceType = "Mobile"
	} else if ua.Bot() {
		deviceType = "Bot"
	}

	g.Go(func() error { return s.store.IncrField(ctx, repository.DocDevices, "device:"+deviceType, 1) })
	g.Go(func() error { return s.store.IncrField(ctx, repository.DocDevices, "browser:"+browserName, 1) })
	g.Go(func() error { return s.store.IncrField(ctx, repository.DocDevices, "os:"+osName, 1) })
}

func (s *RecorderService) applyTraffic(ctx context.Context, g *errgroup.Group, ev Event) {
	source := "Direct"
	if ev.Referrer != "" {
		if u, err := url.Parse(ev.Referrer); err == nil && u.Host != "" {
			source = u.Host
		}
	}
	g.Go(func() error { return s.store.IncrField(ctx, repository.DocTraffic, "source:"+source, 1) })

	if s.geoIP != nil && ev.IPAddress != "" {
		country := s.geoIP.GetCountry(ev.IPAddress)
		g.Go(func() error { return s.store.IncrField(ctx, repository.DocTraffic, "country:"+country, 1) })
	}
}
