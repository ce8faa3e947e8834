package response

import (
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// DuplicateCheckResponse reports whether a (platform, title, year)
// combination already exists. The check is advisory; a concurrent
// writer can still win the race.
type DuplicateCheckResponse struct {
	Exists bool `json:"exists"`
}

// ImportReport summarizes one CSV import run. The counters always
// satisfy Total == Imported + Failed + Duplicates.
type ImportReport struct {
	File       string            `json:"file"`
	StartedAt  time.Time         `json:"startedAt"`
	Total      int               `json:"total"`
	Imported   int               `json:"imported"`
	Failed     int               `json:"failed"`
	Duplicates int               `json:"duplicates"`
	Errors     []ImportRowError  `json:"errors"`
}

// ImportRowError describes one failed CSV row.
type ImportRowError struct {
	Row   int               `json:"row"`
	Error string            `json:"error"`
	Data  map[string]string `json:"data,omitempty"`
}

// NewImportRowError projects an import error entity.
func NewImportRowError(e *entity.ImportError) ImportRowError {
	return ImportRowError{
		Row:   e.Row,
		Error: e.Error,
		Data:  e.Data,
	}
}

// NewImportRowErrors projects a slice of import error entities.
func NewImportRowErrors(errs []*entity.ImportError) []ImportRowError {
	out := make([]ImportRowError, 0, len(errs))
	for _, e := range errs {
		out = append(out, NewImportRowError(e))
	}
	return out
}

// ImportSessionResponse is one entry of the import history listing.
type ImportSessionResponse struct {
	StartedAt  time.Time `json:"startedAt"`
	File       string    `json:"file"`
	ErrorCount int64     `json:"errorCount"`
}

// NewImportSessionResponses projects the DAO session rows.
func NewImportSessionResponses(sessions []dao.ImportSession) []ImportSessionResponse {
	out := make([]ImportSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, ImportSessionResponse{
			StartedAt:  s.StartedAt,
			File:       s.File,
			ErrorCount: s.ErrorCount,
		})
	}
	return out
}
