package entity

import (
	"time"
)

// Year bounds accepted for catalog entries.
const (
	MinContentYear = 1900
	MaxContentYear = 2030
)

// DubbingLanguages is the fixed set of languages tracked per title.
// CSV columns and the dubbing map are keyed by these names.
var DubbingLanguages = []string{
	"hindi", "tamil", "telugu", "kannada", "malayalam",
	"bengali", "marathi", "gujarati", "punjabi", "english",
	"spanish", "french", "german", "japanese", "korean",
}

// SourceFlags marks how a title was produced.
type SourceFlags struct {
	InHouse      bool `json:"in_house"`
	Commissioned bool `json:"commissioned"`
	CoProduction bool `json:"co_production"`
}

// Content represents a catalog entry on an OTT platform
type Content struct {
	ID                 uint            `json:"id"`
	Platform           string          `json:"platform"`
	Title              string          `json:"title"`
	PrimaryLanguage    string          `json:"primary_language"`
	Year               int             `json:"year"`
	SelfDeclaredGenre  string          `json:"self_declared_genre,omitempty"`
	AssignedGenre      string          `json:"assigned_genre,omitempty"`
	SelfDeclaredFormat string          `json:"self_declared_format,omitempty"`
	AssignedFormat     string          `json:"assigned_format,omitempty"`
	Source             string          `json:"source,omitempty"`
	AgeRating          string          `json:"age_rating,omitempty"`
	Seasons            *int            `json:"seasons,omitempty"`
	Episodes           *int            `json:"episodes,omitempty"`
	DurationHours      *float64        `json:"duration_hours,omitempty"`
	ReleaseDate        *time.Time      `json:"release_date,omitempty"`
	SourceFlags        SourceFlags     `json:"source_flags"`
	Dubbing            map[string]bool `json:"dubbing"`
	TotalDubbings      int             `json:"total_dubbings"`
	CreatedBy          uint            `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CountDubbings returns the number of true flags in the dubbing map.
func (c *Content) CountDubbings() int {
	n := 0
	for _, on := range c.Dubbing {
		if on {
			n++
		}
	}
	return n
}

// RecomputeTotalDubbings refreshes the derived total from the dubbing map.
func (c *Content) RecomputeTotalDubbings() {
	c.TotalDubbings = c.CountDubbings()
}

// MissingRequiredFields returns the names of required fields that are unset
// or out of range. Empty result means the entry is valid.
func (c *Content) MissingRequiredFields() []string {
	var fields []string
	if c.Platform == "" {
		fields = append(fields, "platform")
	}
	if c.Title == "" {
		fields = append(fields, "title")
	}
	if c.PrimaryLanguage == "" {
		fields = append(fields, "primaryLanguage")
	}
	if c.Year < MinContentYear || c.Year > MaxContentYear {
		fields = append(fields, "year")
	}
	return fields
}
