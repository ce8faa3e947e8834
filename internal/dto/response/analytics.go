package response

import (
	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// DimensionCounts wraps a single-dimension breakdown. Data is never
// nil so an empty result serializes as [].
func DimensionCounts(rows []dao.DimensionCount) []dao.DimensionCount {
	if rows == nil {
		return []dao.DimensionCount{}
	}
	return rows
}

// CrossTabCounts wraps a two-dimension breakdown.
func CrossTabCounts(rows []dao.CrossTabCount) []dao.CrossTabCount {
	if rows == nil {
		return []dao.CrossTabCount{}
	}
	return rows
}

// DurationStats wraps a duration breakdown.
func DurationStats(rows []dao.DurationStat) []dao.DurationStat {
	if rows == nil {
		return []dao.DurationStat{}
	}
	return rows
}

// YearCount is one point of a per-genre trend series.
type YearCount struct {
	Year  string `json:"year"`
	Count int64  `json:"count"`
}

// GenreTrend is a per-genre series of yearly counts.
type GenreTrend struct {
	Genre  string      `json:"genre"`
	Points []YearCount `json:"points"`
}

// RecentContentResponse is one row of the dashboard's recent list.
type RecentContentResponse struct {
	Content  *entity.Content `json:"content"`
	Username string          `json:"username"`
}

// SummaryResponse backs the dashboard header.
type SummaryResponse struct {
	TotalContent    int64                   `json:"totalContent"`
	TotalPlatforms  int64                   `json:"totalPlatforms"`
	ContentThisYear int64                   `json:"contentThisYear"`
	TotalGenres     int64                   `json:"totalGenres"`
	Recent          []RecentContentResponse `json:"recent"`
}

// NewSummaryResponse projects the DAO summary rows.
func NewSummaryResponse(s *dao.SummaryStats) SummaryResponse {
	recent := make([]RecentContentResponse, 0, len(s.Recent))
	for _, r := range s.Recent {
		recent = append(recent, RecentContentResponse{
			Content:  r.Content,
			Username: r.Username,
		})
	}
	return SummaryResponse{
		TotalContent:    s.TotalContent,
		TotalPlatforms:  s.TotalPlatforms,
		ContentThisYear: s.ContentThisYear,
		TotalGenres:     s.TotalGenres,
		Recent:          recent,
	}
}
