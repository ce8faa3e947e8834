package request

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
)

// yearRangePattern matches the "YYYY-YYYY" range form of the year filter.
var yearRangePattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// parseStringSet splits a comma-separated filter value into a set.
// Blank items are dropped; an empty input yields nil (unconstrained).
func parseStringSet(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseBool accepts only the literal strings "true" and "false".
// Anything else means "not provided".
func parseBool(s string) *bool {
	switch strings.TrimSpace(s) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// parseInt returns nil for empty or malformed values.
func parseInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// parseFloat returns nil for empty or malformed values.
func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseDate accepts an ISO date or RFC 3339 timestamp.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

// applyYear interprets the three accepted year forms: an exact value,
// a "YYYY-YYYY" range, or a comma-separated set. Malformed input adds
// no constraint.
func applyYear(f *dao.ContentFilter, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}

	if yearRangePattern.MatchString(s) {
		lo, _ := strconv.Atoi(s[:4])
		hi, _ := strconv.Atoi(s[5:])
		f.YearMin, f.YearMax = &lo, &hi
		return
	}

	if strings.Contains(s, ",") {
		var set []int
		for _, p := range strings.Split(s, ",") {
			if y, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
				set = append(set, y)
			}
		}
		f.YearSet = set
		return
	}

	if y, err := strconv.Atoi(s); err == nil {
		f.YearExact = &y
	}
}

// parsePage normalizes the 1-based page number.
func parsePage(s string) int {
	if p := parseInt(s); p != nil && *p >= 1 {
		return *p
	}
	return 1
}

// parseLimit normalizes the page size against a default and a cap.
func parseLimit(s string, def, max int) int {
	l := parseInt(s)
	if l == nil || *l < 1 {
		return def
	}
	if *l > max {
		return max
	}
	return *l
}
