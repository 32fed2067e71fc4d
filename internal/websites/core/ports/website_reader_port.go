package ports

import (
	"context"

	"website-stats-service/internal/websites/core/domain"
)

type WebsiteReaderPort interface {
	// GetWebsite returns nil, nil when the website does not exist.
	GetWebsite(ctx context.Context, websiteID string) (*domain.Website, error)
	IsTeamMember(ctx context.Context, teamID, userID string) (bool, error)
}
