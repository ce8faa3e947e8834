package csvio

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

func TestNewReader_MissingColumn(t *testing.T) {
	_, err := NewReader(strings.NewReader("platform,title,year\na,b,2020\n"))
	if err == nil || !strings.Contains(err.Error(), "primary_language") {
		t.Errorf("expected missing column error, got %v", err)
	}
}

func TestNewReader_EmptyFile(t *testing.T) {
	if _, err := NewReader(strings.NewReader("")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestReader_ParseRow(t *testing.T) {
	data := "platform,title,year,primary_language,seasons,duration_hours,release_date,in_house,dub_tamil,dub_telugu\n" +
		"HotStream,The Chase,2022,hindi,2,14.5,2022-06-15,1,1,0\n"
	rd, err := NewReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	raw, line, err := rd.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if line != 2 {
		t.Errorf("line = %d, want 2", line)
	}

	c, err := ParseRow(raw)
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if c.Platform != "HotStream" || c.Title != "The Chase" || c.Year != 2022 {
		t.Errorf("parsed entry: %+v", c)
	}
	if c.Seasons == nil || *c.Seasons != 2 {
		t.Error("seasons not parsed")
	}
	if c.DurationHours == nil || *c.DurationHours != 14.5 {
		t.Error("duration not parsed")
	}
	if c.ReleaseDate == nil || c.ReleaseDate.Year() != 2022 {
		t.Error("release date not parsed")
	}
	if !c.SourceFlags.InHouse {
		t.Error("in_house flag not parsed")
	}
	if !c.Dubbing["tamil"] || c.Dubbing["telugu"] {
		t.Errorf("dubbing flags: %v", c.Dubbing)
	}

	if _, _, err := rd.Next(); err != io.EOF {
		t.Errorf("expected EOF after last row, got %v", err)
	}
}

func TestParseRow_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
	}{
		{"missing title", map[string]string{"platform": "X", "year": "2020", "primary_language": "hindi"}},
		{"bad year", map[string]string{"platform": "X", "title": "T", "year": "20x0", "primary_language": "hindi"}},
		{"year out of range", map[string]string{"platform": "X", "title": "T", "year": "1850", "primary_language": "hindi"}},
		{"bad seasons", map[string]string{"platform": "X", "title": "T", "year": "2020", "primary_language": "hindi", "seasons": "two"}},
		{"bad date", map[string]string{"platform": "X", "title": "T", "year": "2020", "primary_language": "hindi", "release_date": "15/06/2022"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRow(tt.raw); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	seasons := 3
	duration := 22.5
	in := &entity.Content{
		Platform:        "CineMax",
		Title:           "Quiet Streets",
		PrimaryLanguage: "tamil",
		Year:            2021,
		AssignedGenre:   "drama",
		AssignedFormat:  "series",
		AgeRating:       "13+",
		Seasons:         &seasons,
		DurationHours:   &duration,
		SourceFlags:     entity.SourceFlags{Commissioned: true},
		Dubbing:         map[string]bool{"hindi": true, "english": true},
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	rd, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	raw, _, err := rd.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	out, err := ParseRow(raw)
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}

	if out.Platform != in.Platform || out.Title != in.Title || out.Year != in.Year {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.Seasons == nil || *out.Seasons != 3 {
		t.Error("seasons lost in round trip")
	}
	if !out.SourceFlags.Commissioned || out.SourceFlags.InHouse {
		t.Errorf("source flags lost: %+v", out.SourceFlags)
	}
	if !out.Dubbing["hindi"] || !out.Dubbing["english"] || out.Dubbing["tamil"] {
		t.Errorf("dubbing flags lost: %v", out.Dubbing)
	}
}

func TestHeader_CoversAllDubbingLanguages(t *testing.T) {
	header := Header()
	want := len(baseColumns) + len(entity.DubbingLanguages)
	if len(header) != want {
		t.Errorf("header has %d columns, want %d", len(header), want)
	}
	for _, lang := range entity.DubbingLanguages {
		found := false
		for _, col := range header {
			if col == dubPrefix+lang {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("header missing column for %s", lang)
		}
	}
}
