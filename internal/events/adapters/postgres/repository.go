package postgres

import (
	"context"
	"errors"

	"website-stats-service/internal/events/core/domain"
	"website-stats-service/internal/events/core/ports"

	"github.com/lib/pq"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

const insertEventSQL = `
INSERT INTO website_event (
    event_id,
    website_id,
    session_id,
    visit_id,
    created_at,
    url_path,
    url_query,
    referrer_domain,
    page_title,
    event_type,
    event_name,
    os,
    browser,
    device,
    country,
    subdivision1,
    city,
    dedupe_key
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11, $12,
    $13, $14, $15, $16, $17, $18
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *EventRepository) InsertEvent(ctx context.Context, e *domain.Event) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.WebsiteID,
		e.SessionID,
		e.VisitID,
		e.CreatedAt,
		e.URLPath,
		nullable(e.URLQuery),
		nullable(e.ReferrerDomain),
		nullable(e.PageTitle),
		e.EventType,
		nullable(e.EventName),
		nullable(e.OS),
		nullable(e.Browser),
		nullable(e.Device),
		nullable(e.Country),
		nullable(e.Subdivision1),
		nullable(e.City),
		e.DedupeKey,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return false, domain.ErrUnknownWebsite
		}
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

// nullable stores empty optional attributes as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
