package service

import (
	"context"
	"errors"
	"io"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrDuplicateEntry  = errors.New("an entry with this platform, title and year already exists")
)

// ContentService defines the interface for catalog operations
type ContentService interface {
	// Create validates and inserts a catalog entry, recomputing the
	// derived dubbing count, and logs a create activity
	Create(ctx context.Context, actorID uint, req *request.ContentRequest, meta ClientMeta) (*entity.Content, error)

	// Get retrieves a catalog entry by ID
	Get(ctx context.Context, id uint) (*entity.Content, error)

	// Update validates and applies a full update, recomputing the
	// derived dubbing count, and logs an update activity
	Update(ctx context.Context, actorID, id uint, req *request.ContentRequest, meta ClientMeta) (*entity.Content, error)

	// Delete removes a catalog entry and logs a delete activity
	Delete(ctx context.Context, actorID, id uint, meta ClientMeta) error

	// List retrieves catalog entries matching the query with pagination
	List(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[*entity.Content], error)

	// CheckDuplicate reports whether (platform, title, year) is already
	// catalogued. Advisory only; a concurrent writer can still win.
	CheckDuplicate(ctx context.Context, platform, title string, year int) (*response.DuplicateCheckResponse, error)

	// ImportCSV streams a CSV file, inserting valid rows, skipping
	// duplicates and recording per-row failures. Rows commit
	// independently; a failure partway through keeps earlier rows.
	// Logs one import activity for the whole batch.
	ImportCSV(ctx context.Context, actorID uint, filename string, r io.Reader, meta ClientMeta) (*response.ImportReport, error)

	// ListImportSessions lists past import error sessions
	ListImportSessions(ctx context.Context, page, limit int) (*response.PagedResponse[response.ImportSessionResponse], error)

	// ListImportErrors retrieves recorded row failures, optionally
	// scoped to one session
	ListImportErrors(ctx context.Context, q *request.ImportErrorsQuery) (*response.PagedResponse[response.ImportRowError], error)

	// ExportCSV serializes every entry matching the query to CSV,
	// ignoring the query's pagination, and logs an export activity.
	// Returns the number of rows written.
	ExportCSV(ctx context.Context, actorID uint, q *request.AnalyticsQuery, w io.Writer, meta ClientMeta) (int, error)
}
