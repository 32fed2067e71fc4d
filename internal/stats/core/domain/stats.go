package domain

import "math"

// Metric names produced by the stats query, in column order.
const (
	MetricPageviews = "pageviews"
	MetricVisitors  = "visitors"
	MetricVisits    = "visits"
	MetricBounces   = "bounces"
	MetricTotalTime = "totaltime"
)

var MetricNames = []string{
	MetricPageviews,
	MetricVisitors,
	MetricVisits,
	MetricBounces,
	MetricTotalTime,
}

// MetricRow is one aggregated record for a single period, keyed by metric name.
type MetricRow map[string]float64

type MetricChange struct {
	Value  float64
	Change float64
}

// WebsiteStats maps a metric name to its current value and the change against
// the previous period.
type WebsiteStats map[string]MetricChange

// FirstRow returns the first row of a query result, or nil when there is none.
func FirstRow(rows []MetricRow) MetricRow {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// CompareRows builds the stats for every metric present in current.
// A metric missing from previous has no defined change and reports 0.
func CompareRows(current, previous MetricRow) WebsiteStats {
	stats := make(WebsiteStats, len(current))

	for key, cur := range current {
		change := math.NaN()
		if prev, ok := previous[key]; ok {
			change = cur - prev
		}

		stats[key] = MetricChange{
			Value:  finiteOrZero(cur),
			Change: finiteOrZero(change),
		}
	}

	return stats
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
