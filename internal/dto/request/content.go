package request

import (
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// ContentRequest is the JSON body for creating or updating a catalog
// entry. Unknown dubbing languages are rejected by the service, not by
// binding, so the error can name the offending field.
type ContentRequest struct {
	Platform           string          `json:"platform" binding:"required,max=100"`
	Title              string          `json:"title" binding:"required,max=300"`
	PrimaryLanguage    string          `json:"primaryLanguage" binding:"required,max=50"`
	Year               int             `json:"year" binding:"required,min=1900,max=2030"`
	SelfDeclaredGenre  string          `json:"selfDeclaredGenre,omitempty" binding:"max=100"`
	AssignedGenre      string          `json:"assignedGenre,omitempty" binding:"max=100"`
	SelfDeclaredFormat string          `json:"selfDeclaredFormat,omitempty" binding:"max=100"`
	AssignedFormat     string          `json:"assignedFormat,omitempty" binding:"max=100"`
	Source             string          `json:"source,omitempty" binding:"max=100"`
	AgeRating          string          `json:"ageRating,omitempty" binding:"max=20"`
	Seasons            *int            `json:"seasons,omitempty" binding:"omitempty,min=0"`
	Episodes           *int            `json:"episodes,omitempty" binding:"omitempty,min=0"`
	DurationHours      *float64        `json:"durationHours,omitempty" binding:"omitempty,min=0"`
	ReleaseDate        *time.Time      `json:"releaseDate,omitempty"`
	InHouse            bool            `json:"inHouse"`
	Commissioned       bool            `json:"commissioned"`
	CoProduction       bool            `json:"coProduction"`
	Dubbing            map[string]bool `json:"dubbing,omitempty"`
}

// ToEntity builds a catalog entity from the request. The derived
// dubbing count is recomputed by the service before persisting.
func (r *ContentRequest) ToEntity() *entity.Content {
	return &entity.Content{
		Platform:           r.Platform,
		Title:              r.Title,
		PrimaryLanguage:    r.PrimaryLanguage,
		Year:               r.Year,
		SelfDeclaredGenre:  r.SelfDeclaredGenre,
		AssignedGenre:      r.AssignedGenre,
		SelfDeclaredFormat: r.SelfDeclaredFormat,
		AssignedFormat:     r.AssignedFormat,
		Source:             r.Source,
		AgeRating:          r.AgeRating,
		Seasons:            r.Seasons,
		Episodes:           r.Episodes,
		DurationHours:      r.DurationHours,
		ReleaseDate:        r.ReleaseDate,
		SourceFlags: entity.SourceFlags{
			InHouse:      r.InHouse,
			Commissioned: r.Commissioned,
			CoProduction: r.CoProduction,
		},
		Dubbing: r.Dubbing,
	}
}

// DuplicateCheckQuery asks whether (platform, title, year) is already
// catalogued.
type DuplicateCheckQuery struct {
	Platform string `form:"platform" binding:"required"`
	Title    string `form:"title" binding:"required"`
	Year     int    `form:"year" binding:"required"`
}

// ImportErrorsQuery scopes the import-error listing to one session,
// identified by (startedAt, file). Both absent lists every session.
type ImportErrorsQuery struct {
	StartedAt string `form:"startedAt"`
	File      string `form:"file"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`
}
