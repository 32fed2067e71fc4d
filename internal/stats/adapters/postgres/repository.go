package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	platformpg "website-stats-service/internal/platform/postgres"
	"website-stats-service/internal/stats/core/domain"
	"website-stats-service/internal/stats/core/ports"

	"github.com/lib/pq"
)

type (
	RowScanner = platformpg.Rows
	DB         = platformpg.Querier
)

const (
	eventTypePageView    = 1
	eventTypeCustomEvent = 2
)

type StatsRepository struct {
	db DB
}

func NewStatsRepository(db DB) *StatsRepository {
	return &StatsRepository{db: db}
}

var (
	_ ports.StatsReaderPort     = (*StatsRepository)(nil)
	_ ports.DateRangeReaderPort = (*StatsRepository)(nil)
)

// Per-visit subquery: a visit with a single event is a bounce and its time on
// site is the span between its first and last event.
const websiteStatsSQL = `
SELECT
    SUM(t.c) AS pageviews,
    COUNT(DISTINCT t.session_id) AS visitors,
    COUNT(DISTINCT t.visit_id) AS visits,
    SUM(CASE WHEN t.c = 1 THEN 1 ELSE 0 END) AS bounces,
    SUM(EXTRACT(EPOCH FROM (t.max_time - t.min_time))) AS totaltime
FROM (
    SELECT
        session_id,
        visit_id,
        COUNT(*) AS c,
        MIN(created_at) AS min_time,
        MAX(created_at) AS max_time
    FROM website_event
    WHERE %s
    GROUP BY session_id, visit_id
) AS t`

func (r *StatsRepository) GetWebsiteStats(ctx context.Context, websiteID string, q domain.StatsQuery) ([]domain.MetricRow, error) {
	where, args := buildWhere(websiteID, q)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(websiteStatsSQL, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MetricRow
	for rows.Next() {
		values := make([]sql.NullFloat64, len(domain.MetricNames))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(domain.MetricRow, len(values))
		for i, name := range domain.MetricNames {
			// aggregates over no events are NULL
			row[name] = values[i].Float64
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

const websiteDateRangeSQL = `
SELECT
    MIN(created_at) AS min_date,
    MAX(created_at) AS max_date
FROM website_event
WHERE website_id = $1`

func (r *StatsRepository) GetWebsiteDateRange(ctx context.Context, websiteID string) (domain.DateRange, bool, error) {
	rows, err := r.db.QueryContext(ctx, websiteDateRangeSQL, websiteID)
	if err != nil {
		return domain.DateRange{}, false, err
	}
	defer rows.Close()

	var minDate, maxDate sql.NullTime
	if rows.Next() {
		if err := rows.Scan(&minDate, &maxDate); err != nil {
			return domain.DateRange{}, false, err
		}
	}

	if err := rows.Err(); err != nil {
		return domain.DateRange{}, false, err
	}

	if !minDate.Valid || !maxDate.Valid {
		return domain.DateRange{}, false, nil
	}

	return domain.DateRange{
		StartDate: minDate.Time.UTC(),
		EndDate:   maxDate.Time.UTC(),
	}, true, nil
}

// buildWhere turns the period and the optional filters into a positional
// WHERE clause.
func buildWhere(websiteID string, q domain.StatsQuery) (string, []any) {
	conds := []string{"website_id = $1", "created_at BETWEEN $2 AND $3"}
	args := []any{websiteID, q.StartDate.UTC(), q.EndDate.UTC()}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.Event != "" {
		add("event_type = $%d", eventTypeCustomEvent)
		add("event_name = $%d", q.Event)
	} else {
		add("event_type = $%d", eventTypePageView)
	}

	if q.URL != "" {
		add("url_path = $%d", q.URL)
	}
	if len(q.URLs) > 0 {
		add("url_path = ANY($%d)", pq.Array(q.URLs))
	}

	columns := []struct {
		column string
		value  string
	}{
		{"referrer_domain", q.Referrer},
		{"page_title", q.Title},
		{"url_query", q.Query},
		{"os", q.OS},
		{"browser", q.Browser},
		{"device", q.Device},
		{"country", q.Country},
		{"subdivision1", q.Region},
		{"city", q.City},
	}
	for _, c := range columns {
		if c.value != "" {
			add(c.column+" = $%d", c.value)
		}
	}

	return strings.Join(conds, " AND "), args
}
