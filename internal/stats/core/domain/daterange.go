package domain

import "time"

type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
}

// DiffMinutes is the whole number of minutes between start and end,
// truncated toward zero.
func (r DateRange) DiffMinutes() int64 {
	return int64(r.EndDate.Sub(r.StartDate) / time.Minute)
}

// Previous returns the window of the same length (at minute granularity)
// that ends where r starts.
func (r DateRange) Previous() DateRange {
	shift := time.Duration(r.DiffMinutes()) * time.Minute
	return DateRange{
		StartDate: r.StartDate.Add(-shift),
		EndDate:   r.EndDate.Add(-shift),
	}
}

// StatsQuery is what the query layer needs to compute one period.
type StatsQuery struct {
	Filters
	DateRange
}
