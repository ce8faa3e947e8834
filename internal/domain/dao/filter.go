package dao

import (
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// Dimension names a grouping axis for analytics aggregations.
type Dimension string

const (
	DimensionPlatform  Dimension = "platform"
	DimensionGenre     Dimension = "genre"
	DimensionLanguage  Dimension = "language"
	DimensionYear      Dimension = "year"
	DimensionMonth     Dimension = "month"
	DimensionAgeRating Dimension = "ageRating"
	DimensionFormat    Dimension = "format"
	DimensionSource    Dimension = "source"
)

// ParseDimension maps a query-string value to a known dimension.
// The second return is false for unknown values.
func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case DimensionPlatform, DimensionGenre, DimensionLanguage, DimensionYear,
		DimensionMonth, DimensionAgeRating, DimensionFormat, DimensionSource:
		return Dimension(s), true
	}
	return "", false
}

// ContentFilter is the normalized form of the analytics/content query
// grammar. Nil pointers and empty slices mean "unconstrained"; building
// one never fails, because unrecognized values are treated as absent.
type ContentFilter struct {
	Platforms        []string
	Genres           []string
	Languages        []string
	AgeRatings       []string
	Sources          []string
	Formats          []string
	DubbingLanguages []string

	// Year accepts exact, inclusive range, or set form; at most one is set.
	YearExact *int
	YearMin   *int
	YearMax   *int
	YearSet   []int

	StartDate *time.Time
	EndDate   *time.Time

	MinDuration *float64
	MaxDuration *float64

	// Popularity is measured on total_dubbings.
	MinPopularity *int
	MaxPopularity *int

	HasDubbing *bool

	MinSeasons *int
	MaxSeasons *int

	SortBy    string
	SortDesc  bool
	Page      int
	Limit     int

	GroupBy          Dimension
	SecondaryGroupBy Dimension
}

// UserFilter narrows user listings.
type UserFilter struct {
	// Search matches username or email, case-insensitive partial.
	Search          string
	Role            *entity.UserRole
	IsActive        *bool
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	LastLoginAfter  *time.Time
	LastLoginBefore *time.Time

	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// ActivityFilter narrows audit-log listings.
type ActivityFilter struct {
	UserID *uint
	Action *entity.ActivityAction
	After  *time.Time
	Before *time.Time

	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// ImportErrorFilter narrows import-error listings. A session is
// identified by the pair (StartedAt, File).
type ImportErrorFilter struct {
	StartedAt *time.Time
	File      string

	Page  int
	Limit int
}

// DimensionCount is one row of a single-dimension aggregation.
type DimensionCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// CrossTabCount is one cell of a two-dimensional aggregation,
// kept flat for the client to pivot.
type CrossTabCount struct {
	Row   string `json:"row"`
	Col   string `json:"col"`
	Count int64  `json:"count"`
}

// DurationStat is one cell of the duration cross-tab.
type DurationStat struct {
	Row         string  `json:"row"`
	Col         string  `json:"col"`
	Count       int64   `json:"count"`
	AvgDuration float64 `json:"avg_duration"`
	MinDuration float64 `json:"min_duration"`
	MaxDuration float64 `json:"max_duration"`
}

// RecentContent pairs a catalog entry with its creator's username.
type RecentContent struct {
	Content  *entity.Content `json:"content"`
	Username string          `json:"username"`
}

// SummaryStats backs the dashboard header.
type SummaryStats struct {
	TotalContent    int64           `json:"total_content"`
	TotalPlatforms  int64           `json:"total_platforms"`
	ContentThisYear int64           `json:"content_this_year"`
	TotalGenres     int64           `json:"total_genres"`
	Recent          []RecentContent `json:"recent"`
}

// ImportSession is a derived grouping of import errors.
type ImportSession struct {
	StartedAt  time.Time `json:"started_at"`
	File       string    `json:"file"`
	ErrorCount int64     `json:"error_count"`
}
