// Package csvio implements the CSV import/export format for the
// catalog. The codec is pure: it parses and serializes rows without
// touching the database, so the import loop and the export endpoint
// share one column definition.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// dateLayout is the release_date column format.
const dateLayout = "2006-01-02"

// dubPrefix marks per-language dubbing flag columns.
const dubPrefix = "dub_"

// baseColumns is the fixed part of the header, in export order. The
// dubbing flag columns follow, one per tracked language.
var baseColumns = []string{
	"platform",
	"title",
	"year",
	"primary_language",
	"self_declared_genre",
	"assigned_genre",
	"self_declared_format",
	"assigned_format",
	"source",
	"age_rating",
	"seasons",
	"episodes",
	"duration_hours",
	"release_date",
	"in_house",
	"commissioned",
	"co_production",
}

// requiredColumns must be present in an import header.
var requiredColumns = []string{"platform", "title", "year", "primary_language"}

// Header returns the canonical column list used by the exporter.
func Header() []string {
	cols := make([]string, 0, len(baseColumns)+len(entity.DubbingLanguages))
	cols = append(cols, baseColumns...)
	for _, lang := range entity.DubbingLanguages {
		cols = append(cols, dubPrefix+lang)
	}
	return cols
}

// Reader decodes catalog rows from a CSV stream. Column order is
// free; unknown columns are ignored.
type Reader struct {
	csv    *csv.Reader
	index  map[string]int
	line   int
}

// NewReader wraps a CSV stream and consumes its header row.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return &Reader{csv: cr, index: index, line: 1}, nil
}

// Next reads one data row. The raw map carries every recognized
// column's string value and is preserved verbatim in error records.
// Returns io.EOF after the last row.
func (r *Reader) Next() (raw map[string]string, line int, err error) {
	record, err := r.csv.Read()
	r.line++
	if err == io.EOF {
		return nil, r.line, io.EOF
	}
	if err != nil {
		return nil, r.line, err
	}

	raw = make(map[string]string, len(r.index))
	for col, i := range r.index {
		if i < len(record) {
			if v := strings.TrimSpace(record[i]); v != "" {
				raw[col] = v
			}
		}
	}
	return raw, r.line, nil
}

// ParseRow converts a raw row into a catalog entity. The derived
// dubbing count is left for the caller to compute.
func ParseRow(raw map[string]string) (*entity.Content, error) {
	c := &entity.Content{
		Platform:           raw["platform"],
		Title:              raw["title"],
		PrimaryLanguage:    raw["primary_language"],
		SelfDeclaredGenre:  raw["self_declared_genre"],
		AssignedGenre:      raw["assigned_genre"],
		SelfDeclaredFormat: raw["self_declared_format"],
		AssignedFormat:     raw["assigned_format"],
		Source:             raw["source"],
		AgeRating:          raw["age_rating"],
		Dubbing:            map[string]bool{},
	}

	if s, ok := raw["year"]; ok {
		y, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid year: %q", s)
		}
		c.Year = y
	}

	if missing := c.MissingRequiredFields(); len(missing) > 0 {
		return nil, fmt.Errorf("missing or invalid required fields: %s", strings.Join(missing, ", "))
	}

	if s, ok := raw["seasons"]; ok {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid seasons: %q", s)
		}
		c.Seasons = &v
	}
	if s, ok := raw["episodes"]; ok {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid episodes: %q", s)
		}
		c.Episodes = &v
	}
	if s, ok := raw["duration_hours"]; ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid duration_hours: %q", s)
		}
		c.DurationHours = &v
	}
	if s, ok := raw["release_date"]; ok {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("invalid release_date: %q", s)
		}
		c.ReleaseDate = &t
	}

	c.SourceFlags = entity.SourceFlags{
		InHouse:      parseFlag(raw["in_house"]),
		Commissioned: parseFlag(raw["commissioned"]),
		CoProduction: parseFlag(raw["co_production"]),
	}

	for _, lang := range entity.DubbingLanguages {
		if parseFlag(raw[dubPrefix+lang]) {
			c.Dubbing[lang] = true
		}
	}

	return c, nil
}

// parseFlag reads the 1/0 flag columns, also accepting true/false.
func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Writer encodes catalog rows to a CSV stream in the canonical
// column order.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps an output stream and writes the header row.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return nil, err
	}
	return &Writer{csv: cw}, nil
}

// Write serializes one catalog entry.
func (w *Writer) Write(c *entity.Content) error {
	record := make([]string, 0, len(baseColumns)+len(entity.DubbingLanguages))
	record = append(record,
		c.Platform,
		c.Title,
		strconv.Itoa(c.Year),
		c.PrimaryLanguage,
		c.SelfDeclaredGenre,
		c.AssignedGenre,
		c.SelfDeclaredFormat,
		c.AssignedFormat,
		c.Source,
		c.AgeRating,
		formatInt(c.Seasons),
		formatInt(c.Episodes),
		formatFloat(c.DurationHours),
		formatDate(c.ReleaseDate),
		formatFlag(c.SourceFlags.InHouse),
		formatFlag(c.SourceFlags.Commissioned),
		formatFlag(c.SourceFlags.CoProduction),
	)
	for _, lang := range entity.DubbingLanguages {
		record = append(record, formatFlag(c.Dubbing[lang]))
	}
	return w.csv.Write(record)
}

// Flush writes buffered rows to the underlying stream.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatFlag(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
