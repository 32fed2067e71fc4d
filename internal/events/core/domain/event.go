package domain

import (
	"errors"
	"time"
)

// ErrUnknownWebsite is returned by repositories when the event references a
// website that does not exist.
var ErrUnknownWebsite = errors.New("unknown website")

// Event types stored in website_event.event_type.
const (
	EventTypePageView    = 1
	EventTypeCustomEvent = 2
)

// Event is one collected page view or custom event. Session attributes are
// denormalized onto the row so the stats query needs no join.
type Event struct {
	EventID        string
	WebsiteID      string
	SessionID      string
	VisitID        string
	CreatedAt      time.Time
	URLPath        string
	URLQuery       string
	ReferrerDomain string
	PageTitle      string
	EventType      int
	EventName      string
	OS             string
	Browser        string
	Device         string
	Country        string
	Subdivision1   string
	City           string
	DedupeKey      string
}
