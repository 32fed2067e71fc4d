package postgres

import (
	"context"
	"database/sql"

	platformpg "website-stats-service/internal/platform/postgres"
	"website-stats-service/internal/websites/core/domain"
	"website-stats-service/internal/websites/core/ports"
)

type (
	RowScanner = platformpg.Rows
	DB         = platformpg.Querier
)

type WebsiteRepository struct {
	db DB
}

func NewWebsiteRepository(db DB) *WebsiteRepository {
	return &WebsiteRepository{db: db}
}

var _ ports.WebsiteReaderPort = (*WebsiteRepository)(nil)

const getWebsiteSQL = `
SELECT
    website_id,
    name,
    domain,
    user_id,
    team_id,
    deleted_at
FROM website
WHERE website_id = $1`

func (r *WebsiteRepository) GetWebsite(ctx context.Context, websiteID string) (*domain.Website, error) {
	rows, err := r.db.QueryContext(ctx, getWebsiteSQL, websiteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var (
		w         domain.Website
		domainCol sql.NullString
		userID    sql.NullString
		teamID    sql.NullString
		deletedAt sql.NullTime
	)
	if err := rows.Scan(&w.ID, &w.Name, &domainCol, &userID, &teamID, &deletedAt); err != nil {
		return nil, err
	}

	w.Domain = domainCol.String
	w.UserID = userID.String
	w.TeamID = teamID.String
	if deletedAt.Valid {
		t := deletedAt.Time
		w.DeletedAt = &t
	}

	return &w, rows.Err()
}

const isTeamMemberSQL = `
SELECT EXISTS (
    SELECT 1 FROM team_user
    WHERE team_id = $1 AND user_id = $2
)`

func (r *WebsiteRepository) IsTeamMember(ctx context.Context, teamID, userID string) (bool, error) {
	rows, err := r.db.QueryContext(ctx, isTeamMemberSQL, teamID, userID)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var member bool
	if rows.Next() {
		if err := rows.Scan(&member); err != nil {
			return false, err
		}
	}

	return member, rows.Err()
}
