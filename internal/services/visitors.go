package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"folio/internal/repository"
)

// VisitorService approximates unique daily visitors. Each browser carries a
// random ID in a cookie; an ID counts once per calendar day. The per-day
// dedupe is an atomic set-add in the store, so concurrent tabs of the same
// visitor cannot double-count. Different devices or cleared cookies still get
// fresh IDs: this undercounts by design.
type VisitorService struct {
	store  *repository.AnalyticsStore
	logger *slog.Logger
}

func NewVisitorService(store *repository.AnalyticsStore, logger *slog.Logger) *VisitorService {
	return &VisitorService{
		store:  store,
		logger: logger,
	}
}

// RecordVisit counts a visitor for the day of "at". First sighting of the day
// updates the visitor's last-seen date and bumps the daily uniqueUsers
// counter; repeats are no-ops. Errors are logged and swallowed.
func (s *VisitorService) RecordVisit(ctx context.Context, visitorID string, at time.Time) {
	if visitorID == "" {
		return
	}
	date := at.Format(DateLayout)

	first, err := s.store.MarkVisitor(ctx, date, visitorID)
	if err != nil {
		s.logger.Error("Failed to mark visitor", "error", err)
		return
	}
	if !first {
		return
	}

	// lastSeen holds only the most recent date per ID: a returning visitor's
	// history is overwritten, not appended.
	if err := s.store.SetField(ctx, repository.DocUsers, visitorID, date); err != nil {
		s.logger.Error("Failed to update visitor last-seen", "error", err)
	}

	day := repository.DailyDoc(date)
	if err := s.store.IncrField(ctx, day, "uniqueUsers", 1); err != nil {
		s.logger.Error("Failed to increment daily unique users", "error", err)
	}
	if err := s.store.SetField(ctx, day, "lastUpdated", strconv.FormatInt(at.Unix(), 10)); err != nil {
		s.logger.Error("Failed to touch daily bucket", "error", err)
	}
	if err := s.store.TouchDay(ctx, date); err != nil {
		s.logger.Error("Failed to index day", "error", err)
	}
}
