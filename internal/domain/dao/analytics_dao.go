package dao

import (
	"context"
)

// AnalyticsDAO runs aggregation queries over the content collection.
// Every method applies the filter's $match stage first; an empty result
// set yields an empty slice, never an error.
type AnalyticsDAO interface {
	// CountByDimension groups matching entries by one dimension.
	CountByDimension(ctx context.Context, filter *ContentFilter, dim Dimension) ([]DimensionCount, error)

	// CountByDimensions groups matching entries by two dimensions,
	// returning flat (row, col, count) triples.
	CountByDimensions(ctx context.Context, filter *ContentFilter, row, col Dimension) ([]CrossTabCount, error)

	// DubbingCounts counts entries with each dubbing flag set,
	// one row per tracked language.
	DubbingCounts(ctx context.Context, filter *ContentFilter) ([]DimensionCount, error)

	// DurationStats computes avg/min/max duration_hours per (row, col) cell.
	// Entries without a duration are excluded.
	DurationStats(ctx context.Context, filter *ContentFilter, row, col Dimension) ([]DurationStat, error)

	// Summary computes the dashboard header numbers and the five most
	// recently created entries joined with their creator's username.
	Summary(ctx context.Context) (*SummaryStats, error)
}
