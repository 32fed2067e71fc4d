package fiber

import (
	"website-stats-service/internal/stats/core/domain"
)

// WebsiteStatsQuery is the validated request of GET /api/websites/{websiteId}/stats.
// startAt and endAt stay strings until validated so that a malformed value
// is reported as a field error.
type WebsiteStatsQuery struct {
	WebsiteID string `params:"websiteId" validate:"required,uuid"`
	StartAt   string `query:"startAt" validate:"required,number"`
	EndAt     string `query:"endAt" validate:"required,number"`
	URL       string `query:"url"`
	URLs      string `query:"urls" validate:"omitempty,urls"`
	Referrer  string `query:"referrer"`
	Title     string `query:"title"`
	Query     string `query:"query"`
	Event     string `query:"event"`
	OS        string `query:"os"`
	Browser   string `query:"browser"`
	Device    string `query:"device"`
	Country   string `query:"country"`
	Region    string `query:"region"`
	City      string `query:"city"`
}

func (q WebsiteStatsQuery) Filters() domain.Filters {
	return domain.Filters{
		URL:      q.URL,
		URLs:     domain.ParseURLsFilter(q.URLs),
		Referrer: q.Referrer,
		Title:    q.Title,
		Query:    q.Query,
		Event:    q.Event,
		OS:       q.OS,
		Browser:  q.Browser,
		Device:   q.Device,
		Country:  q.Country,
		Region:   q.Region,
		City:     q.City,
	}
}

type MetricChangeResponse struct {
	Value  float64 `json:"value" example:"100"`
	Change float64 `json:"change" example:"20"`
}

// WebsiteStatsResponse maps a metric name (pageviews, visitors, visits,
// bounces, totaltime) to its value and change.
type WebsiteStatsResponse map[string]MetricChangeResponse

type ErrorResponse struct {
	Error   string            `json:"error" example:"validation_error"`
	Message string            `json:"message,omitempty" example:"request validation failed"`
	Fields  map[string]string `json:"fields,omitempty"`
}
