package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"website-stats-service/internal/stats/core/domain"
	"website-stats-service/internal/stats/core/ports"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidStatsQuery = errors.New("invalid stats query")
	ErrInvalidTimeRange  = errors.New("invalid time range")
)

const (
	PeriodCurrent  = "current"
	PeriodPrevious = "previous"
)

type GetWebsiteStatsInput struct {
	WebsiteID string
	StartAt   int64 // unix milliseconds
	EndAt     int64 // unix milliseconds
	Filters   domain.Filters
}

// QueryObserver receives the duration of every period query.
type QueryObserver interface {
	ObserveStatsQuery(period string, elapsed time.Duration)
}

type Option func(*GetWebsiteStatsUseCase)

func WithQueryObserver(o QueryObserver) Option {
	return func(uc *GetWebsiteStatsUseCase) {
		uc.observer = o
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *GetWebsiteStatsUseCase) {
		uc.now = now
	}
}

type GetWebsiteStatsUseCase struct {
	reader   ports.StatsReaderPort
	ranges   ports.DateRangeReaderPort
	observer QueryObserver
	now      func() time.Time
}

func NewGetWebsiteStatsUseCase(reader ports.StatsReaderPort, ranges ports.DateRangeReaderPort, opts ...Option) *GetWebsiteStatsUseCase {
	uc := &GetWebsiteStatsUseCase{
		reader: reader,
		ranges: ranges,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute computes the stats of the requested window and compares them with
// the window of the same length right before it.
func (uc *GetWebsiteStatsUseCase) Execute(ctx context.Context, in GetWebsiteStatsInput) (domain.WebsiteStats, error) {
	if in.WebsiteID == "" {
		return nil, ErrInvalidStatsQuery
	}

	current, err := uc.DateRange(ctx, in.WebsiteID, in.StartAt, in.EndAt)
	if err != nil {
		return nil, err
	}
	previous := current.Previous()

	var metrics, prevPeriod []domain.MetricRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.query(gctx, PeriodCurrent, in.WebsiteID, domain.StatsQuery{Filters: in.Filters, DateRange: current})
		metrics = rows
		return err
	})
	g.Go(func() error {
		rows, err := uc.query(gctx, PeriodPrevious, in.WebsiteID, domain.StatsQuery{Filters: in.Filters, DateRange: previous})
		prevPeriod = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.CompareRows(domain.FirstRow(metrics), domain.FirstRow(prevPeriod)), nil
}

func (uc *GetWebsiteStatsUseCase) query(ctx context.Context, period, websiteID string, q domain.StatsQuery) ([]domain.MetricRow, error) {
	start := uc.now()
	rows, err := uc.reader.GetWebsiteStats(ctx, websiteID, q)
	if uc.observer != nil {
		uc.observer.ObserveStatsQuery(period, uc.now().Sub(start))
	}
	if err != nil {
		return nil, fmt.Errorf("query %s period: %w", period, err)
	}
	return rows, nil
}
