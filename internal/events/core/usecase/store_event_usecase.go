package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"website-stats-service/internal/events/core/domain"
	"website-stats-service/internal/events/core/ports"

	"github.com/google/uuid"
)

var (
	ErrInvalidEvent   = errors.New("invalid event")
	ErrFutureTime     = errors.New("timestamp cannot be in the future")
	ErrUnknownWebsite = domain.ErrUnknownWebsite
)

// visitNamespace seeds the derived visit ids.
var visitNamespace = uuid.MustParse("6f1c2c8e-3b0e-4c55-9a0e-0c7d9d3c5a21")

type StoreEventUseCase struct {
	repo ports.EventRepositoryPort
	now  func() time.Time
}

func NewStoreEventUseCase(repo ports.EventRepositoryPort) *StoreEventUseCase {
	return &StoreEventUseCase{repo: repo, now: time.Now}
}

type StoreEventInput struct {
	WebsiteID string
	SessionID string
	VisitID   string
	URL       string
	Query     string
	Referrer  string
	Title     string
	Name      string
	OS        string
	Browser   string
	Device    string
	Country   string
	Region    string
	City      string
	Timestamp int64
}

func (uc *StoreEventUseCase) Execute(ctx context.Context, in StoreEventInput) (bool, error) {
	e, err := uc.buildEvent(in)
	if err != nil {
		return false, err
	}

	created, err := uc.repo.InsertEvent(ctx, e)
	if err != nil {
		return false, err
	}

	return created, nil
}

// buildEvent validates the input and derives the stored row.
func (uc *StoreEventUseCase) buildEvent(in StoreEventInput) (*domain.Event, error) {
	if err := uc.validateInput(in); err != nil {
		return nil, err
	}

	createdAt := time.Unix(in.Timestamp, 0).UTC()

	path, query := splitURL(in.URL)
	if in.Query != "" {
		query = strings.TrimPrefix(in.Query, "?")
	}

	visitID := in.VisitID
	if visitID == "" {
		visitID = deriveVisitID(in.SessionID, createdAt)
	}

	eventType := domain.EventTypePageView
	if in.Name != "" {
		eventType = domain.EventTypeCustomEvent
	}

	e := &domain.Event{
		EventID:        uuid.NewString(),
		WebsiteID:      in.WebsiteID,
		SessionID:      in.SessionID,
		VisitID:        visitID,
		CreatedAt:      createdAt,
		URLPath:        path,
		URLQuery:       query,
		ReferrerDomain: referrerDomain(in.Referrer),
		PageTitle:      in.Title,
		EventType:      eventType,
		EventName:      in.Name,
		OS:             in.OS,
		Browser:        in.Browser,
		Device:         in.Device,
		Country:        in.Country,
		Subdivision1:   in.Region,
		City:           in.City,
		DedupeKey:      buildDedupeKey(in, createdAt),
	}

	if err := checkColumnLimits(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Column widths of website_event.
const (
	maxTextLength      = 500
	maxAttributeLength = 50
)

func checkColumnLimits(e *domain.Event) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"url", e.URLPath, maxTextLength},
		{"query", e.URLQuery, maxTextLength},
		{"referrer", e.ReferrerDomain, maxTextLength},
		{"title", e.PageTitle, maxTextLength},
		{"name", e.EventName, maxAttributeLength},
		{"os", e.OS, maxAttributeLength},
		{"browser", e.Browser, maxAttributeLength},
		{"device", e.Device, maxAttributeLength},
		{"country", e.Country, maxAttributeLength},
		{"region", e.Subdivision1, maxAttributeLength},
		{"city", e.City, maxAttributeLength},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidEvent, f.name, f.max)
		}
	}
	return nil
}

func buildDedupeKey(in StoreEventInput, t time.Time) string {
	// website_id + session_id + url + event name + unix_timestamp
	return fmt.Sprintf("%s|%s|%s|%s|%d",
		in.WebsiteID,
		in.SessionID,
		in.URL,
		in.Name,
		t.Unix(),
	)
}

// deriveVisitID groups the events of one session into hourly visits.
func deriveVisitID(sessionID string, t time.Time) string {
	bucket := t.Truncate(time.Hour).Unix()
	return uuid.NewSHA1(visitNamespace, fmt.Appendf(nil, "%s:%d", sessionID, bucket)).String()
}

// splitURL separates the path from an inline query string.
func splitURL(raw string) (path, query string) {
	u, err := url.Parse(raw)
	if err != nil {
		path, query, _ = strings.Cut(raw, "?")
		return path, query
	}
	if u.Path == "" {
		return "/", u.RawQuery
	}
	return u.Path, u.RawQuery
}

func referrerDomain(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

type BulkCreateEventsInput struct {
	Events []StoreEventInput
}

type BulkCreateEventsResult struct {
	Created    int
	Duplicates int
}

func (uc *StoreEventUseCase) BulkCreateEvents(ctx context.Context, in BulkCreateEventsInput) (BulkCreateEventsResult, error) {
	var res BulkCreateEventsResult

	events := make([]*domain.Event, len(in.Events))
	for i, ev := range in.Events {
		e, err := uc.buildEvent(ev)
		if err != nil {
			return res, fmt.Errorf("event %d: %w", i, err)
		}
		events[i] = e
	}

	for _, e := range events {
		ok, err := uc.repo.InsertEvent(ctx, e)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreEventUseCase) validateInput(in StoreEventInput) error {
	if err := uuid.Validate(in.WebsiteID); err != nil {
		return fmt.Errorf("%w: website must be a UUID", ErrInvalidEvent)
	}
	if err := uuid.Validate(in.SessionID); err != nil {
		return fmt.Errorf("%w: session_id must be a UUID", ErrInvalidEvent)
	}
	if in.VisitID != "" {
		if err := uuid.Validate(in.VisitID); err != nil {
			return fmt.Errorf("%w: visit_id must be a UUID", ErrInvalidEvent)
		}
	}
	if in.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidEvent)
	}
	if in.Timestamp <= 0 {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEvent)
	}

	if in.Timestamp > uc.now().Unix() {
		return ErrFutureTime
	}

	return nil
}
