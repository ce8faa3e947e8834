package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/testutil/mocks"
)

type analyticsFixture struct {
	repo  *mocks.MockAnalyticsRepository
	store *mocks.MockCacheStore
	svc   service.AnalyticsService
}

func newAnalyticsFixture() *analyticsFixture {
	f := &analyticsFixture{
		repo:  &mocks.MockAnalyticsRepository{},
		store: mocks.NewMockCacheStore(),
	}
	f.svc = NewAnalyticsService(f.repo, f.store, testConfig(), testLogger())
	return f
}

func TestPlatformDistributionEmpty(t *testing.T) {
	f := newAnalyticsFixture()

	rows, err := f.svc.PlatformDistribution(context.Background(), &request.AnalyticsQuery{})
	if err != nil {
		t.Fatalf("PlatformDistribution: %v", err)
	}
	// An empty catalog yields an empty slice, never nil, so the JSON
	// response is [] rather than null.
	if rows == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v, want empty", rows)
	}
}

func TestPlatformDistributionFilterPassthrough(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.DimensionRows = []dao.DimensionCount{
		{Key: "netflix", Count: 10},
		{Key: "prime", Count: 4},
	}

	rows, err := f.svc.PlatformDistribution(context.Background(), &request.AnalyticsQuery{
		Platform: "netflix,prime",
		Year:     "2018-2020",
	})
	if err != nil {
		t.Fatalf("PlatformDistribution: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	filter := f.repo.LastFilter
	if filter == nil {
		t.Fatal("filter not passed to repository")
	}
	if len(filter.Platforms) != 2 {
		t.Errorf("platforms = %v, want 2 entries", filter.Platforms)
	}
	if filter.YearMin == nil || *filter.YearMin != 2018 || filter.YearMax == nil || *filter.YearMax != 2020 {
		t.Errorf("year range = %v..%v, want 2018..2020", filter.YearMin, filter.YearMax)
	}
}

func TestYearlyReleasesSorted(t *testing.T) {
	f := newAnalyticsFixture()
	// The repository orders by count; the yearly series re-sorts by key.
	f.repo.DimensionRows = []dao.DimensionCount{
		{Key: "2021", Count: 30},
		{Key: "2019", Count: 20},
		{Key: "2020", Count: 10},
	}

	rows, err := f.svc.YearlyReleases(context.Background(), &request.AnalyticsQuery{})
	if err != nil {
		t.Fatalf("YearlyReleases: %v", err)
	}
	want := []string{"2019", "2020", "2021"}
	for i, w := range want {
		if rows[i].Key != w {
			t.Errorf("rows[%d].Key = %q, want %q", i, rows[i].Key, w)
		}
	}
}

func TestTopDubbedLanguages(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.DubbingRows = []dao.DimensionCount{
		{Key: "hindi", Count: 5},
		{Key: "english", Count: 20},
		{Key: "tamil", Count: 12},
		{Key: "telugu", Count: 0},
	}

	page, err := f.svc.TopDubbedLanguages(context.Background(), &request.AnalyticsQuery{Limit: "2"})
	if err != nil {
		t.Fatalf("TopDubbedLanguages: %v", err)
	}

	if page.TotalDocs != 4 {
		t.Errorf("totalDocs = %d, want 4", page.TotalDocs)
	}
	if len(page.Docs) != 2 {
		t.Fatalf("docs = %d, want 2", len(page.Docs))
	}
	if page.Docs[0].Key != "english" || page.Docs[1].Key != "tamil" {
		t.Errorf("page 1 = %v, want english then tamil", page.Docs)
	}
	if !page.HasNextPage {
		t.Error("expected a next page")
	}

	second, err := f.svc.TopDubbedLanguages(context.Background(), &request.AnalyticsQuery{Limit: "2", Page: "2"})
	if err != nil {
		t.Fatalf("TopDubbedLanguages page 2: %v", err)
	}
	if len(second.Docs) != 2 || second.Docs[0].Key != "hindi" {
		t.Errorf("page 2 = %v, want hindi then telugu", second.Docs)
	}
	if second.HasNextPage {
		t.Error("page 2 should be the last page")
	}
}

func TestGenreTrendsFolding(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.CrossTabRows = []dao.CrossTabCount{
		{Row: "drama", Col: "2019", Count: 3},
		{Row: "drama", Col: "2020", Count: 5},
		{Row: "thriller", Col: "2019", Count: 2},
	}

	trends, err := f.svc.GenreTrends(context.Background(), &request.AnalyticsQuery{})
	if err != nil {
		t.Fatalf("GenreTrends: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("trends = %d, want 2 genres", len(trends))
	}
	if trends[0].Genre != "drama" || len(trends[0].Points) != 2 {
		t.Errorf("drama series = %+v, want 2 points", trends[0])
	}
	if trends[0].Points[1].Year != "2020" || trends[0].Points[1].Count != 5 {
		t.Errorf("drama 2020 point = %+v", trends[0].Points[1])
	}
	if trends[1].Genre != "thriller" || len(trends[1].Points) != 1 {
		t.Errorf("thriller series = %+v, want 1 point", trends[1])
	}
}

func TestGroupedCountsSingleDimension(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.DimensionRows = []dao.DimensionCount{
		{Key: "netflix", Count: 7},
	}

	rows, err := f.svc.GroupedCounts(context.Background(), &request.AnalyticsQuery{})
	if err != nil {
		t.Fatalf("GroupedCounts: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Row != "netflix" || rows[0].Col != "" || rows[0].Count != 7 {
		t.Errorf("row = %+v, want netflix with empty col", rows[0])
	}
}

func TestGroupedCountsTwoDimensions(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.CrossTabRows = []dao.CrossTabCount{
		{Row: "netflix", Col: "drama", Count: 3},
	}

	rows, err := f.svc.GroupedCounts(context.Background(), &request.AnalyticsQuery{
		GroupBy:          "platform",
		SecondaryGroupBy: "genre",
	})
	if err != nil {
		t.Fatalf("GroupedCounts: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Row != "netflix" || rows[0].Col != "drama" {
		t.Errorf("row = %+v, want netflix/drama cell", rows[0])
	}
}

func TestSummary(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.SummaryStats = &dao.SummaryStats{
		TotalContent:    120,
		TotalPlatforms:  4,
		ContentThisYear: 15,
		TotalGenres:     9,
	}

	resp, err := f.svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if resp.TotalContent != 120 || resp.TotalPlatforms != 4 {
		t.Errorf("unexpected summary: %+v", resp)
	}
	if resp.Recent == nil {
		t.Error("recent list should be empty, not null")
	}
}

func TestPublicSummaryCaching(t *testing.T) {
	f := newAnalyticsFixture()
	ctx := context.Background()
	f.repo.SummaryStats = &dao.SummaryStats{TotalContent: 50}

	first, err := f.svc.PublicSummary(ctx)
	if err != nil {
		t.Fatalf("PublicSummary: %v", err)
	}
	if first.TotalContent != 50 {
		t.Errorf("totalContent = %d, want 50", first.TotalContent)
	}

	// The second call is served from the cache and never reaches the
	// repository.
	f.repo.Err = errors.New("database down")
	second, err := f.svc.PublicSummary(ctx)
	if err != nil {
		t.Fatalf("cached PublicSummary: %v", err)
	}
	if second.TotalContent != 50 {
		t.Errorf("cached totalContent = %d, want 50", second.TotalContent)
	}
	if f.store.Hits != 1 {
		t.Errorf("cache hits = %d, want 1", f.store.Hits)
	}
}

func TestPublicSummaryCacheFailureDegrades(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.SummaryStats = &dao.SummaryStats{TotalContent: 50}
	f.store.GetErr = errors.New("redis down")
	f.store.SetErr = errors.New("redis down")

	resp, err := f.svc.PublicSummary(context.Background())
	if err != nil {
		t.Fatalf("PublicSummary with broken cache: %v", err)
	}
	if resp.TotalContent != 50 {
		t.Errorf("totalContent = %d, want 50", resp.TotalContent)
	}
}

func TestPublicPlatformDistributionCaching(t *testing.T) {
	f := newAnalyticsFixture()
	ctx := context.Background()
	f.repo.DimensionRows = []dao.DimensionCount{{Key: "netflix", Count: 3}}

	first, err := f.svc.PublicPlatformDistribution(ctx)
	if err != nil {
		t.Fatalf("PublicPlatformDistribution: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("rows = %d, want 1", len(first))
	}

	f.repo.Err = errors.New("database down")
	second, err := f.svc.PublicPlatformDistribution(ctx)
	if err != nil {
		t.Fatalf("cached PublicPlatformDistribution: %v", err)
	}
	if len(second) != 1 || second[0].Key != "netflix" {
		t.Errorf("cached rows = %v", second)
	}
}

func TestAnalyticsRepositoryErrorPropagates(t *testing.T) {
	f := newAnalyticsFixture()
	f.repo.Err = errors.New("aggregation failed")

	if _, err := f.svc.LanguageStats(context.Background(), &request.AnalyticsQuery{}); err == nil {
		t.Error("expected repository error to propagate")
	}
	if _, err := f.svc.Summary(context.Background()); err == nil {
		t.Error("expected repository error to propagate")
	}
}
