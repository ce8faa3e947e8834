package impl

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/csvio"
	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
	"github.com/jrjohn/streamlens-go/internal/observability"
	apperrors "github.com/jrjohn/streamlens-go/pkg/errors"
)

// exportBatchSize pages the export query so one request never holds
// the whole catalog in memory.
const exportBatchSize = 1000

// knownDubbingLanguages indexes the tracked language set for request
// validation.
var knownDubbingLanguages = func() map[string]bool {
	m := make(map[string]bool, len(entity.DubbingLanguages))
	for _, lang := range entity.DubbingLanguages {
		m[lang] = true
	}
	return m
}()

// contentService implements service.ContentService
type contentService struct {
	contentRepo     repository.ContentRepository
	importErrorRepo repository.ImportErrorRepository
	activities      *activityRecorder
	metrics         *observability.MetricsProvider
	logger          *zap.Logger
	defaultLimit    int
	maxLimit        int
}

// NewContentService creates a new ContentService instance
func NewContentService(
	contentRepo repository.ContentRepository,
	importErrorRepo repository.ImportErrorRepository,
	activityRepo repository.ActivityRepository,
	cfg *config.Config,
	metrics *observability.MetricsProvider,
	logger *zap.Logger,
) service.ContentService {
	return &contentService{
		contentRepo:     contentRepo,
		importErrorRepo: importErrorRepo,
		activities:      newActivityRecorder(activityRepo, logger),
		metrics:         metrics,
		logger:          logger,
		defaultLimit:    cfg.Analytics.DefaultLimit,
		maxLimit:        cfg.Analytics.MaxLimit,
	}
}

func (s *contentService) Create(ctx context.Context, actorID uint, req *request.ContentRequest, meta service.ClientMeta) (*entity.Content, error) {
	content := req.ToEntity()
	if err := s.validate(content); err != nil {
		return nil, err
	}

	// Advisory duplicate check; no unique index backs it, so a
	// concurrent writer can still create a duplicate.
	exists, err := s.contentRepo.ExistsByNaturalKey(ctx, content.Platform, content.Title, content.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, service.ErrDuplicateEntry
	}

	content.RecomputeTotalDubbings()
	content.CreatedBy = actorID

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	s.activities.record(ctx, actorID, entity.ActionCreate, meta, map[string]any{
		"content_id": content.ID,
		"title":      content.Title,
	})
	return content, nil
}

func (s *contentService) Get(ctx context.Context, id uint) (*entity.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, service.ErrContentNotFound
	}
	return content, nil
}

func (s *contentService) Update(ctx context.Context, actorID, id uint, req *request.ContentRequest, meta service.ClientMeta) (*entity.Content, error) {
	existing, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, service.ErrContentNotFound
	}

	content := req.ToEntity()
	if err := s.validate(content); err != nil {
		return nil, err
	}

	content.ID = existing.ID
	content.CreatedBy = existing.CreatedBy
	content.CreatedAt = existing.CreatedAt
	content.RecomputeTotalDubbings()

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	s.activities.record(ctx, actorID, entity.ActionUpdate, meta, map[string]any{
		"content_id": id,
		"title":      content.Title,
	})
	return content, nil
}

func (s *contentService) Delete(ctx context.Context, actorID, id uint, meta service.ClientMeta) error {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if content == nil {
		return service.ErrContentNotFound
	}

	if err := s.contentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.record(ctx, actorID, entity.ActionDelete, meta, map[string]any{
		"content_id": id,
		"title":      content.Title,
	})
	return nil
}

func (s *contentService) List(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[*entity.Content], error) {
	filter := q.ToFilter(s.defaultLimit, s.maxLimit)

	entries, total, err := s.contentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	paged := response.NewPagedResponse(entries, filter.Page, filter.Limit, total)
	return &paged, nil
}

func (s *contentService) CheckDuplicate(ctx context.Context, platform, title string, year int) (*response.DuplicateCheckResponse, error) {
	exists, err := s.contentRepo.ExistsByNaturalKey(ctx, platform, title, year)
	if err != nil {
		return nil, err
	}
	return &response.DuplicateCheckResponse{Exists: exists}, nil
}

func (s *contentService) ImportCSV(ctx context.Context, actorID uint, filename string, r io.Reader, meta service.ClientMeta) (*response.ImportReport, error) {
	startedAt := time.Now()

	reader, err := csvio.NewReader(r)
	if err != nil {
		return nil, apperrors.ErrBadRequest.WithMessage(err.Error()).WithError(err)
	}

	report := &response.ImportReport{
		File:      filename,
		StartedAt: startedAt,
		Errors:    []response.ImportRowError{},
	}

	// Rows commit independently: a failure on row N leaves rows 1..N-1
	// persisted.
	for {
		raw, line, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Total++
			s.recordRowError(ctx, report, startedAt, filename, line, err.Error(), nil)
			continue
		}
		report.Total++

		content, err := csvio.ParseRow(raw)
		if err != nil {
			s.recordRowError(ctx, report, startedAt, filename, line, err.Error(), raw)
			continue
		}

		exists, err := s.contentRepo.ExistsByNaturalKey(ctx, content.Platform, content.Title, content.Year)
		if err != nil {
			s.recordRowError(ctx, report, startedAt, filename, line, err.Error(), raw)
			continue
		}
		if exists {
			report.Duplicates++
			continue
		}

		content.RecomputeTotalDubbings()
		content.CreatedBy = actorID
		if err := s.contentRepo.Create(ctx, content); err != nil {
			s.recordRowError(ctx, report, startedAt, filename, line, err.Error(), raw)
			continue
		}
		report.Imported++
	}

	s.logger.Info("csv import finished",
		zap.String("file", filename),
		zap.Int("total", report.Total),
		zap.Int("imported", report.Imported),
		zap.Int("failed", report.Failed),
		zap.Int("duplicates", report.Duplicates))

	s.metrics.RecordImport(ctx, filename, report.Imported, report.Failed, report.Duplicates, time.Since(startedAt))

	s.activities.record(ctx, actorID, entity.ActionImport, meta, map[string]any{
		"file":       filename,
		"total":      report.Total,
		"imported":   report.Imported,
		"failed":     report.Failed,
		"duplicates": report.Duplicates,
	})
	return report, nil
}

// recordRowError accounts one failed row and persists it for the
// import-errors endpoint.
func (s *contentService) recordRowError(ctx context.Context, report *response.ImportReport, startedAt time.Time, filename string, line int, msg string, raw map[string]string) {
	report.Failed++
	report.Errors = append(report.Errors, response.ImportRowError{
		Row:   line,
		Error: msg,
		Data:  raw,
	})

	importError := &entity.ImportError{
		SessionStartedAt: startedAt,
		File:             filename,
		Row:              line,
		Error:            msg,
		Data:             raw,
	}
	if err := s.importErrorRepo.Create(ctx, importError); err != nil {
		s.logger.Warn("failed to persist import error",
			zap.String("file", filename),
			zap.Int("row", line),
			zap.Error(err))
	}
}

func (s *contentService) ListImportSessions(ctx context.Context, page, limit int) (*response.PagedResponse[response.ImportSessionResponse], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > s.maxLimit {
		limit = userListDefaultLimit
	}

	sessions, total, err := s.importErrorRepo.ListSessions(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	paged := response.NewPagedResponse(response.NewImportSessionResponses(sessions), page, limit, total)
	return &paged, nil
}

func (s *contentService) ListImportErrors(ctx context.Context, q *request.ImportErrorsQuery) (*response.PagedResponse[response.ImportRowError], error) {
	filter := &dao.ImportErrorFilter{
		File:  q.File,
		Page:  1,
		Limit: s.defaultLimit,
	}
	if t, err := time.Parse(time.RFC3339, q.StartedAt); err == nil {
		filter.StartedAt = &t
	}
	if p := parsePositive(q.Page); p > 0 {
		filter.Page = p
	}
	if l := parsePositive(q.Limit); l > 0 && l <= s.maxLimit {
		filter.Limit = l
	}

	rows, total, err := s.importErrorRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	paged := response.NewPagedResponse(response.NewImportRowErrors(rows), filter.Page, filter.Limit, total)
	return &paged, nil
}

func (s *contentService) ExportCSV(ctx context.Context, actorID uint, q *request.AnalyticsQuery, w io.Writer, meta service.ClientMeta) (int, error) {
	filter := q.ToFilter(s.defaultLimit, s.maxLimit)
	// The export ignores the query's pagination and streams every
	// matching row in batches.
	filter.Limit = exportBatchSize

	writer, err := csvio.NewWriter(w)
	if err != nil {
		return 0, err
	}

	written := 0
	for page := 1; ; page++ {
		filter.Page = page
		entries, _, err := s.contentRepo.List(ctx, filter)
		if err != nil {
			return written, err
		}
		for _, c := range entries {
			if err := writer.Write(c); err != nil {
				return written, err
			}
			written++
		}
		if len(entries) < exportBatchSize {
			break
		}
	}
	if err := writer.Flush(); err != nil {
		return written, err
	}

	s.activities.record(ctx, actorID, entity.ActionExport, meta, map[string]any{
		"rows": written,
	})
	return written, nil
}

// validate applies the catalog rules binding cannot express: required
// field presence, year bounds and the fixed dubbing language set.
func (s *contentService) validate(content *entity.Content) error {
	if missing := content.MissingRequiredFields(); len(missing) > 0 {
		return apperrors.NewValidation(missing...)
	}
	for lang := range content.Dubbing {
		if !knownDubbingLanguages[lang] {
			return apperrors.NewValidation(fmt.Sprintf("dubbing.%s", lang))
		}
	}
	return nil
}

// parsePositive reads a positive integer query value, 0 otherwise.
func parsePositive(s string) int {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil || v < 1 {
		return 0
	}
	return v
}
