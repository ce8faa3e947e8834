package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
)

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mu      sync.RWMutex
	entries map[uint]*entity.Content
	nextID  uint

	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
	ListErr   error
	ExistsErr error
}

var _ repository.ContentRepository = (*MockContentRepository)(nil)

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{
		entries: make(map[uint]*entity.Content),
		nextID:  1,
	}
}

// Seed inserts an entry directly, bypassing error injection.
func (r *MockContentRepository) Seed(content *entity.Content) *entity.Content {
	r.mu.Lock()
	defer r.mu.Unlock()
	if content.ID == 0 {
		content.ID = r.nextID
		r.nextID++
	} else if content.ID >= r.nextID {
		r.nextID = content.ID + 1
	}
	r.entries[content.ID] = content
	return content
}

// Count reports how many entries the store holds.
func (r *MockContentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *MockContentRepository) Create(ctx context.Context, content *entity.Content) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	content.ID = r.nextID
	r.nextID++
	content.CreatedAt = time.Now()
	content.UpdatedAt = time.Now()
	r.entries[content.ID] = content
	return nil
}

func (r *MockContentRepository) GetByID(ctx context.Context, id uint) (*entity.Content, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.entries[id]; ok {
		return c, nil
	}
	return nil, nil
}

func (r *MockContentRepository) Update(ctx context.Context, content *entity.Content) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[content.ID] = content
	return nil
}

func (r *MockContentRepository) Delete(ctx context.Context, id uint) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *MockContentRepository) List(ctx context.Context, filter *dao.ContentFilter) ([]*entity.Content, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Content
	for _, c := range r.entries {
		if !matchesFilter(c, filter) {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// matchesFilter applies the subset of the filter grammar the service
// tests exercise.
func matchesFilter(c *entity.Content, f *dao.ContentFilter) bool {
	if len(f.Platforms) > 0 && !containsString(f.Platforms, c.Platform) {
		return false
	}
	if len(f.Genres) > 0 && !containsString(f.Genres, c.AssignedGenre) {
		return false
	}
	if len(f.Languages) > 0 && !containsString(f.Languages, c.PrimaryLanguage) {
		return false
	}
	if f.YearExact != nil && c.Year != *f.YearExact {
		return false
	}
	if f.YearMin != nil && c.Year < *f.YearMin {
		return false
	}
	if f.YearMax != nil && c.Year > *f.YearMax {
		return false
	}
	if len(f.YearSet) > 0 {
		found := false
		for _, y := range f.YearSet {
			if c.Year == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.HasDubbing != nil {
		if *f.HasDubbing && c.TotalDubbings == 0 {
			return false
		}
		if !*f.HasDubbing && c.TotalDubbings > 0 {
			return false
		}
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (r *MockContentRepository) ExistsByNaturalKey(ctx context.Context, platform, title string, year int) (bool, error) {
	if r.ExistsErr != nil {
		return false, r.ExistsErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.entries {
		if c.Platform == platform && c.Title == title && c.Year == year {
			return true, nil
		}
	}
	return false, nil
}

// MockImportErrorRepository is a mock implementation of ImportErrorRepository
type MockImportErrorRepository struct {
	mu     sync.RWMutex
	Errors []*entity.ImportError
	nextID uint

	CreateErr error
	ListErr   error
}

var _ repository.ImportErrorRepository = (*MockImportErrorRepository)(nil)

func NewMockImportErrorRepository() *MockImportErrorRepository {
	return &MockImportErrorRepository{nextID: 1}
}

func (r *MockImportErrorRepository) Create(ctx context.Context, importError *entity.ImportError) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	importError.ID = r.nextID
	r.nextID++
	importError.CreatedAt = time.Now()
	r.Errors = append(r.Errors, importError)
	return nil
}

func (r *MockImportErrorRepository) ListSessions(ctx context.Context, page, limit int) ([]dao.ImportSession, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct {
		at   time.Time
		file string
	}
	counts := make(map[key]int64)
	for _, e := range r.Errors {
		counts[key{e.SessionStartedAt, e.File}]++
	}

	var sessions []dao.ImportSession
	for k, n := range counts {
		sessions = append(sessions, dao.ImportSession{StartedAt: k.at, File: k.file, ErrorCount: n})
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartedAt.After(sessions[j].StartedAt) })
	return sessions, int64(len(sessions)), nil
}

func (r *MockImportErrorRepository) List(ctx context.Context, filter *dao.ImportErrorFilter) ([]*entity.ImportError, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.ImportError
	for _, e := range r.Errors {
		if filter.File != "" && e.File != filter.File {
			continue
		}
		if filter.StartedAt != nil && !e.SessionStartedAt.Equal(*filter.StartedAt) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, int64(len(matched)), nil
}

// MockAnalyticsRepository is a canned-response mock of AnalyticsRepository
type MockAnalyticsRepository struct {
	DimensionRows []dao.DimensionCount
	CrossTabRows  []dao.CrossTabCount
	DurationRows  []dao.DurationStat
	DubbingRows   []dao.DimensionCount
	SummaryStats  *dao.SummaryStats

	Err error

	// LastFilter captures the filter of the most recent call.
	LastFilter *dao.ContentFilter
}

var _ repository.AnalyticsRepository = (*MockAnalyticsRepository)(nil)

func (r *MockAnalyticsRepository) CountByDimension(ctx context.Context, filter *dao.ContentFilter, dim dao.Dimension) ([]dao.DimensionCount, error) {
	r.LastFilter = filter
	return r.DimensionRows, r.Err
}

func (r *MockAnalyticsRepository) CountByDimensions(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.CrossTabCount, error) {
	r.LastFilter = filter
	return r.CrossTabRows, r.Err
}

func (r *MockAnalyticsRepository) DubbingCounts(ctx context.Context, filter *dao.ContentFilter) ([]dao.DimensionCount, error) {
	r.LastFilter = filter
	return r.DubbingRows, r.Err
}

func (r *MockAnalyticsRepository) DurationStats(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.DurationStat, error) {
	r.LastFilter = filter
	return r.DurationRows, r.Err
}

func (r *MockAnalyticsRepository) Summary(ctx context.Context) (*dao.SummaryStats, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if r.SummaryStats != nil {
		return r.SummaryStats, nil
	}
	return &dao.SummaryStats{Recent: []dao.RecentContent{}}, nil
}
