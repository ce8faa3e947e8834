package mocks

import (
	"context"
	"io"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

func mockUser() response.UserResponse {
	return response.UserResponse{
		ID:       1,
		Username: "testuser",
		Email:    "test@example.com",
		Role:     "user",
		IsActive: true,
	}
}

func mockTokens() response.TokenPair {
	return response.TokenPair{
		AccessToken:  "mock-access-token",
		RefreshToken: "mock-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, req *request.RegisterRequest, meta service.ClientMeta) (*response.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *request.LoginRequest, meta service.ClientMeta) (*response.AuthResponse, error)
	VerifyFunc         func(ctx context.Context, accessToken string) (*response.VerifyResponse, error)
	RefreshTokenFunc   func(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error)
	ChangePasswordFunc func(ctx context.Context, userID uint, req *request.ChangePasswordRequest) error
	LogoutFunc         func(ctx context.Context, userID uint, refreshToken string, meta service.ClientMeta) error
	LogoutAllFunc      func(ctx context.Context, userID uint) error
}

var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, req *request.RegisterRequest, meta service.ClientMeta) (*response.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req, meta)
	}
	user := mockUser()
	user.Username = req.Username
	user.Email = req.Email
	return &response.AuthResponse{User: user, Tokens: mockTokens()}, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *request.LoginRequest, meta service.ClientMeta) (*response.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req, meta)
	}
	return &response.AuthResponse{User: mockUser(), Tokens: mockTokens()}, nil
}

func (m *MockAuthService) Verify(ctx context.Context, accessToken string) (*response.VerifyResponse, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, accessToken)
	}
	return &response.VerifyResponse{Valid: true, User: mockUser()}, nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, req)
	}
	return &response.AuthResponse{User: mockUser(), Tokens: mockTokens()}, nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, req *request.ChangePasswordRequest) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, req)
	}
	return nil
}

func (m *MockAuthService) Logout(ctx context.Context, userID uint, refreshToken string, meta service.ClientMeta) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID, refreshToken, meta)
	}
	return nil
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID uint) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	GetProfileFunc        func(ctx context.Context, userID uint) (*response.UserResponse, error)
	UpdateProfileFunc     func(ctx context.Context, userID uint, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ListFunc              func(ctx context.Context, q *request.UserListQuery) (*response.PagedResponse[response.UserResponse], error)
	GetFunc               func(ctx context.Context, id uint) (*response.UserResponse, error)
	DeleteFunc            func(ctx context.Context, actorID, id uint, meta service.ClientMeta) error
	UpdateRoleFunc        func(ctx context.Context, actorID, id uint, role string, meta service.ClientMeta) (*response.UserResponse, error)
	ToggleStatusFunc      func(ctx context.Context, actorID, id uint, meta service.ClientMeta) (*response.UserResponse, error)
	BulkUpdateRolesFunc   func(ctx context.Context, actorID uint, req *request.BulkRoleRequest, meta service.ClientMeta) (*response.BulkUpdateResponse, error)
	BulkUpdateStatusFunc  func(ctx context.Context, actorID uint, req *request.BulkStatusRequest, meta service.ClientMeta) (*response.BulkUpdateResponse, error)
	ListActivitiesFunc    func(ctx context.Context, userID uint, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error)
	ListAllActivitiesFunc func(ctx context.Context, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error)
}

var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) GetProfile(ctx context.Context, userID uint) (*response.UserResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	user := mockUser()
	user.ID = userID
	return &user, nil
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uint, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	user := mockUser()
	user.ID = userID
	return &user, nil
}

func (m *MockUserService) List(ctx context.Context, q *request.UserListQuery) (*response.PagedResponse[response.UserResponse], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	page := response.NewPagedResponse([]response.UserResponse{mockUser()}, 1, 10, 1)
	return &page, nil
}

func (m *MockUserService) Get(ctx context.Context, id uint) (*response.UserResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	user := mockUser()
	user.ID = id
	return &user, nil
}

func (m *MockUserService) Delete(ctx context.Context, actorID, id uint, meta service.ClientMeta) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actorID, id, meta)
	}
	return nil
}

func (m *MockUserService) UpdateRole(ctx context.Context, actorID, id uint, role string, meta service.ClientMeta) (*response.UserResponse, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, actorID, id, role, meta)
	}
	user := mockUser()
	user.ID = id
	user.Role = role
	return &user, nil
}

func (m *MockUserService) ToggleStatus(ctx context.Context, actorID, id uint, meta service.ClientMeta) (*response.UserResponse, error) {
	if m.ToggleStatusFunc != nil {
		return m.ToggleStatusFunc(ctx, actorID, id, meta)
	}
	user := mockUser()
	user.ID = id
	user.IsActive = false
	return &user, nil
}

func (m *MockUserService) BulkUpdateRoles(ctx context.Context, actorID uint, req *request.BulkRoleRequest, meta service.ClientMeta) (*response.BulkUpdateResponse, error) {
	if m.BulkUpdateRolesFunc != nil {
		return m.BulkUpdateRolesFunc(ctx, actorID, req, meta)
	}
	n := int64(len(req.UserIDs))
	return &response.BulkUpdateResponse{Matched: n, Modified: n}, nil
}

func (m *MockUserService) BulkUpdateStatus(ctx context.Context, actorID uint, req *request.BulkStatusRequest, meta service.ClientMeta) (*response.BulkUpdateResponse, error) {
	if m.BulkUpdateStatusFunc != nil {
		return m.BulkUpdateStatusFunc(ctx, actorID, req, meta)
	}
	n := int64(len(req.UserIDs))
	return &response.BulkUpdateResponse{Matched: n, Modified: n}, nil
}

func (m *MockUserService) ListActivities(ctx context.Context, userID uint, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error) {
	if m.ListActivitiesFunc != nil {
		return m.ListActivitiesFunc(ctx, userID, q)
	}
	page := response.NewPagedResponse([]response.ActivityResponse{}, 1, 10, 0)
	return &page, nil
}

func (m *MockUserService) ListAllActivities(ctx context.Context, q *request.ActivityListQuery) (*response.PagedResponse[response.ActivityResponse], error) {
	if m.ListAllActivitiesFunc != nil {
		return m.ListAllActivitiesFunc(ctx, q)
	}
	page := response.NewPagedResponse([]response.ActivityResponse{}, 1, 10, 0)
	return &page, nil
}

// MockContentService is a mock implementation of ContentService
type MockContentService struct {
	CreateFunc             func(ctx context.Context, actorID uint, req *request.ContentRequest, meta service.ClientMeta) (*entity.Content, error)
	GetFunc                func(ctx context.Context, id uint) (*entity.Content, error)
	UpdateFunc             func(ctx context.Context, actorID, id uint, req *request.ContentRequest, meta service.ClientMeta) (*entity.Content, error)
	DeleteFunc             func(ctx context.Context, actorID, id uint, meta service.ClientMeta) error
	ListFunc               func(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[*entity.Content], error)
	CheckDuplicateFunc     func(ctx context.Context, platform, title string, year int) (*response.DuplicateCheckResponse, error)
	ImportCSVFunc          func(ctx context.Context, actorID uint, filename string, r io.Reader, meta service.ClientMeta) (*response.ImportReport, error)
	ListImportSessionsFunc func(ctx context.Context, page, limit int) (*response.PagedResponse[response.ImportSessionResponse], error)
	ListImportErrorsFunc   func(ctx context.Context, q *request.ImportErrorsQuery) (*response.PagedResponse[response.ImportRowError], error)
	ExportCSVFunc          func(ctx context.Context, actorID uint, q *request.AnalyticsQuery, w io.Writer, meta service.ClientMeta) (int, error)
}

var _ service.ContentService = (*MockContentService)(nil)

func NewMockContentService() *MockContentService {
	return &MockContentService{}
}

func mockContent(id uint) *entity.Content {
	return &entity.Content{
		ID:              id,
		Platform:        "netflix",
		Title:           "Sacred Games",
		Year:            2018,
		PrimaryLanguage: "hindi",
	}
}

func (m *MockContentService) Create(ctx context.Context, actorID uint, req *request.ContentRequest, meta service.ClientMeta) (*entity.Content, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actorID, req, meta)
	}
	c := req.ToEntity()
	c.ID = 1
	c.CreatedBy = actorID
	return c, nil
}

func (m *MockContentService) Get(ctx context.Context, id uint) (*entity.Content, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return mockContent(id), nil
}

func (m *MockContentService) Update(ctx context.Context, actorID, id uint, req *request.ContentRequest, meta service.ClientMeta) (*entity.Content, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actorID, id, req, meta)
	}
	c := req.ToEntity()
	c.ID = id
	return c, nil
}

func (m *MockContentService) Delete(ctx context.Context, actorID, id uint, meta service.ClientMeta) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actorID, id, meta)
	}
	return nil
}

func (m *MockContentService) List(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[*entity.Content], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	page := response.NewPagedResponse([]*entity.Content{mockContent(1)}, 1, 10, 1)
	return &page, nil
}

func (m *MockContentService) CheckDuplicate(ctx context.Context, platform, title string, year int) (*response.DuplicateCheckResponse, error) {
	if m.CheckDuplicateFunc != nil {
		return m.CheckDuplicateFunc(ctx, platform, title, year)
	}
	return &response.DuplicateCheckResponse{Exists: false}, nil
}

func (m *MockContentService) ImportCSV(ctx context.Context, actorID uint, filename string, r io.Reader, meta service.ClientMeta) (*response.ImportReport, error) {
	if m.ImportCSVFunc != nil {
		return m.ImportCSVFunc(ctx, actorID, filename, r, meta)
	}
	return &response.ImportReport{
		File:      filename,
		StartedAt: time.Now(),
		Total:     1,
		Imported:  1,
		Errors:    []response.ImportRowError{},
	}, nil
}

func (m *MockContentService) ListImportSessions(ctx context.Context, page, limit int) (*response.PagedResponse[response.ImportSessionResponse], error) {
	if m.ListImportSessionsFunc != nil {
		return m.ListImportSessionsFunc(ctx, page, limit)
	}
	resp := response.NewPagedResponse([]response.ImportSessionResponse{}, page, limit, 0)
	return &resp, nil
}

func (m *MockContentService) ListImportErrors(ctx context.Context, q *request.ImportErrorsQuery) (*response.PagedResponse[response.ImportRowError], error) {
	if m.ListImportErrorsFunc != nil {
		return m.ListImportErrorsFunc(ctx, q)
	}
	resp := response.NewPagedResponse([]response.ImportRowError{}, 1, 10, 0)
	return &resp, nil
}

func (m *MockContentService) ExportCSV(ctx context.Context, actorID uint, q *request.AnalyticsQuery, w io.Writer, meta service.ClientMeta) (int, error) {
	if m.ExportCSVFunc != nil {
		return m.ExportCSVFunc(ctx, actorID, q, w, meta)
	}
	return 0, nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	DimensionFunc func(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error)
	CrossTabFunc  func(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error)
	SummaryFunc   func(ctx context.Context) (*response.SummaryResponse, error)

	TopDubbedFunc   func(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[dao.DimensionCount], error)
	DurationFunc    func(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DurationStat, error)
	GenreTrendsFunc func(ctx context.Context, q *request.AnalyticsQuery) ([]response.GenreTrend, error)

	PublicDimensionFunc func(ctx context.Context) ([]dao.DimensionCount, error)
	PublicSummaryFunc   func(ctx context.Context) (*response.SummaryResponse, error)
}

var _ service.AnalyticsService = (*MockAnalyticsService)(nil)

func NewMockAnalyticsService() *MockAnalyticsService {
	return &MockAnalyticsService{}
}

func (m *MockAnalyticsService) dimension(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	if m.DimensionFunc != nil {
		return m.DimensionFunc(ctx, q)
	}
	return []dao.DimensionCount{{Key: "netflix", Count: 10}}, nil
}

func (m *MockAnalyticsService) crossTab(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	if m.CrossTabFunc != nil {
		return m.CrossTabFunc(ctx, q)
	}
	return []dao.CrossTabCount{{Row: "netflix", Col: "drama", Count: 5}}, nil
}

func (m *MockAnalyticsService) PlatformDistribution(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	return m.dimension(ctx, q)
}

func (m *MockAnalyticsService) LanguageStats(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	return m.dimension(ctx, q)
}

func (m *MockAnalyticsService) YearlyReleases(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	return m.dimension(ctx, q)
}

func (m *MockAnalyticsService) AgeRatingDistribution(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	return m.dimension(ctx, q)
}

func (m *MockAnalyticsService) MonthlyReleases(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	return m.dimension(ctx, q)
}

func (m *MockAnalyticsService) TopDubbedLanguages(ctx context.Context, q *request.AnalyticsQuery) (*response.PagedResponse[dao.DimensionCount], error) {
	if m.TopDubbedFunc != nil {
		return m.TopDubbedFunc(ctx, q)
	}
	page := response.NewPagedResponse([]dao.DimensionCount{{Key: "english", Count: 20}}, 1, 10, 1)
	return &page, nil
}

func (m *MockAnalyticsService) DubbingAnalysis(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DimensionCount, error) {
	return m.dimension(ctx, q)
}

func (m *MockAnalyticsService) PlatformGrowth(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	return m.crossTab(ctx, q)
}

func (m *MockAnalyticsService) GenrePlatformMatrix(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	return m.crossTab(ctx, q)
}

func (m *MockAnalyticsService) LanguagePlatformMatrix(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	return m.crossTab(ctx, q)
}

func (m *MockAnalyticsService) FormatGenreDuration(ctx context.Context, q *request.AnalyticsQuery) ([]dao.DurationStat, error) {
	if m.DurationFunc != nil {
		return m.DurationFunc(ctx, q)
	}
	return []dao.DurationStat{}, nil
}

func (m *MockAnalyticsService) GenreTrends(ctx context.Context, q *request.AnalyticsQuery) ([]response.GenreTrend, error) {
	if m.GenreTrendsFunc != nil {
		return m.GenreTrendsFunc(ctx, q)
	}
	return []response.GenreTrend{}, nil
}

func (m *MockAnalyticsService) GroupedCounts(ctx context.Context, q *request.AnalyticsQuery) ([]dao.CrossTabCount, error) {
	return m.crossTab(ctx, q)
}

func (m *MockAnalyticsService) Summary(ctx context.Context) (*response.SummaryResponse, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx)
	}
	return &response.SummaryResponse{TotalContent: 100}, nil
}

func (m *MockAnalyticsService) PublicSummary(ctx context.Context) (*response.SummaryResponse, error) {
	if m.PublicSummaryFunc != nil {
		return m.PublicSummaryFunc(ctx)
	}
	return &response.SummaryResponse{TotalContent: 100}, nil
}

func (m *MockAnalyticsService) PublicPlatformDistribution(ctx context.Context) ([]dao.DimensionCount, error) {
	if m.PublicDimensionFunc != nil {
		return m.PublicDimensionFunc(ctx)
	}
	return []dao.DimensionCount{{Key: "netflix", Count: 10}}, nil
}

func (m *MockAnalyticsService) PublicYearlyReleases(ctx context.Context) ([]dao.DimensionCount, error) {
	if m.PublicDimensionFunc != nil {
		return m.PublicDimensionFunc(ctx)
	}
	return []dao.DimensionCount{{Key: "2020", Count: 10}}, nil
}
