package usecase

import (
	"context"
	"fmt"

	"website-stats-service/internal/websites/core/ports"
)

// Viewer is the caller asking for website data.
type Viewer struct {
	UserID         string
	IsAdmin        bool
	ShareWebsiteID string
}

type CanViewWebsiteUseCase struct {
	reader ports.WebsiteReaderPort
}

func NewCanViewWebsiteUseCase(reader ports.WebsiteReaderPort) *CanViewWebsiteUseCase {
	return &CanViewWebsiteUseCase{reader: reader}
}

// Execute reports whether v may read the data of websiteID. Admins and share
// tokens for that website are allowed without a lookup; users must own the
// website or belong to its team.
func (uc *CanViewWebsiteUseCase) Execute(ctx context.Context, v Viewer, websiteID string) (bool, error) {
	if v.IsAdmin {
		return true, nil
	}

	if v.ShareWebsiteID != "" && v.ShareWebsiteID == websiteID {
		return true, nil
	}

	if v.UserID == "" {
		return false, nil
	}

	website, err := uc.reader.GetWebsite(ctx, websiteID)
	if err != nil {
		return false, fmt.Errorf("get website: %w", err)
	}
	if website == nil || website.Deleted() {
		return false, nil
	}

	if website.UserID != "" {
		return website.UserID == v.UserID, nil
	}

	if website.TeamID != "" {
		member, err := uc.reader.IsTeamMember(ctx, website.TeamID, v.UserID)
		if err != nil {
			return false, fmt.Errorf("team membership: %w", err)
		}
		return member, nil
	}

	return false, nil
}
