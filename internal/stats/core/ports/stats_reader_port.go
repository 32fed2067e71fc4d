package ports

import (
	"context"

	"website-stats-service/internal/stats/core/domain"
)

// StatsReaderPort computes the aggregated metrics of one website for one period.
// Implementations return one row per period; callers use the first.
type StatsReaderPort interface {
	GetWebsiteStats(ctx context.Context, websiteID string, q domain.StatsQuery) ([]domain.MetricRow, error)
}

type DateRangeReaderPort interface {
	// GetWebsiteDateRange:
	//   found = true  -> first and last event times of the website
	//   found = false -> website has no events yet
	GetWebsiteDateRange(ctx context.Context, websiteID string) (r domain.DateRange, found bool, err error)
}
