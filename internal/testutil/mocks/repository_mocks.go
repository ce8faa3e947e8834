// Package mocks provides in-memory repository fakes with error
// injection for service tests.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*entity.User
	nextID uint

	// Error injection
	CreateErr     error
	GetErr        error
	UpdateErr     error
	DeleteErr     error
	ListErr       error
	ExistsErr     error
	UpdateManyErr error
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*entity.User),
		nextID: 1,
	}
}

// Seed inserts a user directly, bypassing error injection.
func (r *MockUserRepository) Seed(user *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

func (r *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, nil
}

func (r *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *MockUserRepository) List(ctx context.Context, filter *dao.UserFilter) ([]*entity.User, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.User
	for _, user := range r.users {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.IsActive != nil && user.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, user)
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

func (r *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if r.ExistsErr != nil {
		return false, r.ExistsErr
	}
	user, _ := r.GetByUsername(ctx, username)
	return user != nil, nil
}

func (r *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.ExistsErr != nil {
		return false, r.ExistsErr
	}
	user, _ := r.GetByEmail(ctx, email)
	return user != nil, nil
}

func (r *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.LastLogin = &at
	}
	return nil
}

func (r *MockUserRepository) UpdateMany(ctx context.Context, ids []uint, fields map[string]any) (int64, int64, error) {
	if r.UpdateManyErr != nil {
		return 0, 0, r.UpdateManyErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched, modified int64
	for _, id := range ids {
		user, ok := r.users[id]
		if !ok {
			continue
		}
		matched++
		if role, ok := fields["role"].(string); ok && string(user.Role) != role {
			user.Role = entity.UserRole(role)
			modified++
			continue
		}
		if active, ok := fields["is_active"].(bool); ok && user.IsActive != active {
			user.IsActive = active
			modified++
		}
	}
	return matched, modified, nil
}

// MockRefreshTokenRepository is a mock implementation of RefreshTokenRepository
type MockRefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*entity.RefreshToken
	nextID uint

	CreateErr error
	GetErr    error
	RevokeErr error
	DeleteErr error
}

var _ repository.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{
		tokens: make(map[string]*entity.RefreshToken),
		nextID: 1,
	}
}

func (r *MockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = r.nextID
	r.nextID++
	token.CreatedAt = time.Now()
	r.tokens[token.Token] = token
	return nil
}

func (r *MockRefreshTokenRepository) GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tokens[token]; ok {
		return t, nil
	}
	return nil, nil
}

func (r *MockRefreshTokenRepository) RevokeByToken(ctx context.Context, token string) error {
	if r.RevokeErr != nil {
		return r.RevokeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		t.Revoked = true
	}
	return nil
}

func (r *MockRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	if r.RevokeErr != nil {
		return r.RevokeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if r.DeleteErr != nil {
		return 0, r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for key, t := range r.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	mu         sync.RWMutex
	Activities []*entity.UserActivity
	nextID     uint

	CreateErr error
	ListErr   error
}

var _ repository.ActivityRepository = (*MockActivityRepository)(nil)

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{nextID: 1}
}

func (r *MockActivityRepository) Create(ctx context.Context, activity *entity.UserActivity) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	activity.ID = r.nextID
	r.nextID++
	activity.CreatedAt = time.Now()
	r.Activities = append(r.Activities, activity)
	return nil
}

func (r *MockActivityRepository) List(ctx context.Context, filter *dao.ActivityFilter) ([]*entity.UserActivity, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.UserActivity
	for _, a := range r.Activities {
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		if filter.Action != nil && a.Action != *filter.Action {
			continue
		}
		matched = append(matched, a)
	}

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

// LastAction returns the most recently recorded action, or "".
func (r *MockActivityRepository) LastAction() entity.ActivityAction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.Activities) == 0 {
		return ""
	}
	return r.Activities[len(r.Activities)-1].Action
}
