package request

import (
	"github.com/jrjohn/streamlens-go/internal/domain/dao"
)

// AnalyticsQuery is the raw query-string form of the content filter
// grammar. Every field is optional; values that fail to parse are
// treated as absent, never as an error. The same grammar backs the
// content listing, the CSV export and every analytics endpoint.
type AnalyticsQuery struct {
	Platform string `form:"platform"`
	Genre    string `form:"genre"`
	Language string `form:"language"`
	// Type is an accepted alias for Format.
	Type      string `form:"type"`
	Format    string `form:"format"`
	AgeRating string `form:"ageRating"`
	Source    string `form:"source"`

	Year      string `form:"year"`
	StartYear string `form:"startYear"`
	EndYear   string `form:"endYear"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`

	MinDuration   string `form:"minDuration"`
	MaxDuration   string `form:"maxDuration"`
	MinPopularity string `form:"minPopularity"`
	MaxPopularity string `form:"maxPopularity"`
	MinSeasons    string `form:"minSeasons"`
	MaxSeasons    string `form:"maxSeasons"`

	HasDubbing      string `form:"hasDubbing"`
	DubbingLanguage string `form:"dubbingLanguage"`

	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`

	GroupBy          string `form:"groupBy"`
	SecondaryGroupBy string `form:"secondaryGroupBy"`
}

// ToFilter normalizes the raw query into a DAO filter. defaultLimit
// and maxLimit come from configuration.
func (q *AnalyticsQuery) ToFilter(defaultLimit, maxLimit int) *dao.ContentFilter {
	f := &dao.ContentFilter{
		Platforms:        parseStringSet(q.Platform),
		Genres:           parseStringSet(q.Genre),
		Languages:        parseStringSet(q.Language),
		AgeRatings:       parseStringSet(q.AgeRating),
		Sources:          parseStringSet(q.Source),
		DubbingLanguages: parseStringSet(q.DubbingLanguage),
	}

	format := q.Format
	if format == "" {
		format = q.Type
	}
	f.Formats = parseStringSet(format)

	applyYear(f, q.Year)
	if f.YearExact == nil && f.YearSet == nil {
		if v := parseInt(q.StartYear); v != nil {
			f.YearMin = v
		}
		if v := parseInt(q.EndYear); v != nil {
			f.YearMax = v
		}
	}

	f.StartDate = parseDate(q.StartDate)
	f.EndDate = parseDate(q.EndDate)

	f.MinDuration = parseFloat(q.MinDuration)
	f.MaxDuration = parseFloat(q.MaxDuration)
	f.MinPopularity = parseInt(q.MinPopularity)
	f.MaxPopularity = parseInt(q.MaxPopularity)
	f.MinSeasons = parseInt(q.MinSeasons)
	f.MaxSeasons = parseInt(q.MaxSeasons)

	f.HasDubbing = parseBool(q.HasDubbing)

	f.SortBy = q.SortBy
	f.SortDesc = q.SortOrder != "asc"
	f.Page = parsePage(q.Page)
	f.Limit = parseLimit(q.Limit, defaultLimit, maxLimit)

	if dim, ok := dao.ParseDimension(q.GroupBy); ok {
		f.GroupBy = dim
	}
	if dim, ok := dao.ParseDimension(q.SecondaryGroupBy); ok {
		f.SecondaryGroupBy = dim
	}

	return f
}
