package services

import (
	"time"
)

// EventKind names the analytics events the recorder understands.
type EventKind string

const (
	EventSectionView  EventKind = "sectionView"
	EventLinkClick    EventKind = "linkClick"
	EventDownload     EventKind = "download"
	EventResumeOpen   EventKind = "resumeOpen"
	EventUniqueVisit  EventKind = "uniqueVisit"
	EventCustom       EventKind = "custom"
	EventBlogView     EventKind = "blogView"
	EventBlogLike     EventKind = "blogLike"
	EventBlogRead     EventKind = "blogRead"
	EventPageLoad     EventKind = "pageLoad"
	EventPageDuration EventKind = "pageDuration"
	EventError        EventKind = "error"
	EventDevice       EventKind = "device"
	EventTraffic      EventKind = "traffic"
)

// DateLayout is the ISO date format used for daily bucket keys. Lexicographic
// order equals chronological order.
const DateLayout = "2006-01-02"

// Event is one recorded analytics event. Key carries the section name, link
// name, file name, page or slug depending on Kind.
type Event struct {
	Kind      EventKind
	Key       string
	Millis    int64 // durations for pageLoad / pageDuration / blogRead
	VisitorID string
	UserAgent string
	Referrer  string
	IPAddress string

	// Error events
	Message   string
	Stack     string
	Component string

	// Custom events
	Category string
	Meta     map[string]string

	At time.Time
}
