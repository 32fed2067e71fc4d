package usecase

import (
	"context"
	"fmt"
	"time"

	"website-stats-service/internal/stats/core/domain"
)

// startAt=0&endAt=1 asks for the whole lifetime of the website.
const (
	allTimeStartAt = 0
	allTimeEndAt   = 1
)

// DateRange resolves the startAt/endAt query values (unix milliseconds) into
// concrete instants.
func (uc *GetWebsiteStatsUseCase) DateRange(ctx context.Context, websiteID string, startAt, endAt int64) (domain.DateRange, error) {
	if startAt == allTimeStartAt && endAt == allTimeEndAt {
		return uc.allTime(ctx, websiteID)
	}

	r := domain.DateRange{
		StartDate: time.UnixMilli(startAt).UTC(),
		EndDate:   time.UnixMilli(endAt).UTC(),
	}
	if r.EndDate.Before(r.StartDate) {
		return domain.DateRange{}, ErrInvalidTimeRange
	}
	return r, nil
}

func (uc *GetWebsiteStatsUseCase) allTime(ctx context.Context, websiteID string) (domain.DateRange, error) {
	r, found, err := uc.ranges.GetWebsiteDateRange(ctx, websiteID)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("website date range: %w", err)
	}
	if !found {
		now := uc.now().UTC()
		return domain.DateRange{StartDate: now, EndDate: now}, nil
	}
	return r, nil
}
