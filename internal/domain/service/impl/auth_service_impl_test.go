package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/security"
	"github.com/jrjohn/streamlens-go/internal/testutil/mocks"
)

type authFixture struct {
	users    *mocks.MockUserRepository
	tokens   *mocks.MockRefreshTokenRepository
	activity *mocks.MockActivityRepository
	hasher   *security.PasswordHasher
	svc      service.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    mocks.NewMockUserRepository(),
		tokens:   mocks.NewMockRefreshTokenRepository(),
		activity: mocks.NewMockActivityRepository(),
		hasher:   security.NewPasswordHasher(),
	}
	f.svc = NewAuthService(f.users, f.tokens, f.activity, testJWTProvider(), f.hasher, testLogger())
	return f
}

// seedUser creates an active user with the given plaintext password.
func (f *authFixture) seedUser(username, email, password string) *entity.User {
	hashed, err := f.hasher.Hash(password)
	if err != nil {
		panic(err)
	}
	return f.users.Seed(&entity.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     entity.RoleUser,
		IsActive: true,
	})
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	}, service.ClientMeta{IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if resp.User.Username != "alice" || resp.User.ID == 0 {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}
	if !resp.User.IsActive {
		t.Error("new user should be active")
	}
	if resp.User.Role != string(entity.RoleUser) {
		t.Errorf("new user role = %q, want %q", resp.User.Role, entity.RoleUser)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if resp.Tokens.TokenType != "Bearer" {
		t.Errorf("token type = %q, want Bearer", resp.Tokens.TokenType)
	}

	// The password must never be stored in plaintext.
	stored, _ := f.users.GetByUsername(ctx, "alice")
	if stored.Password == "s3cret-password" {
		t.Error("password stored in plaintext")
	}

	// The refresh token must be persisted for later rotation.
	persisted, _ := f.tokens.GetByToken(ctx, resp.Tokens.RefreshToken)
	if persisted == nil {
		t.Fatal("refresh token not persisted")
	}
	if persisted.UserID != resp.User.ID {
		t.Errorf("refresh token user = %d, want %d", persisted.UserID, resp.User.ID)
	}

	if got := f.activity.LastAction(); got != entity.ActionRegister {
		t.Errorf("last activity = %q, want %q", got, entity.ActionRegister)
	}
}

func TestRegisterExplicitRole(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, &request.RegisterRequest{
		Username: "root",
		Email:    "root@example.com",
		Password: "s3cret-password",
		Role:     "admin",
	}, service.ClientMeta{})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.User.Role != string(entity.RoleAdmin) {
		t.Errorf("role = %q, want %q", resp.User.Role, entity.RoleAdmin)
	}

	stored, _ := f.users.GetByUsername(ctx, "root")
	if stored.Role != entity.RoleAdmin {
		t.Errorf("stored role = %q, want %q", stored.Role, entity.RoleAdmin)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser("alice", "alice@example.com", "password-one")

	cases := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"username taken", &request.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "password-two"}},
		{"email taken", &request.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "password-two"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tc.req, service.ClientMeta{})
			if !errors.Is(err, service.ErrUserAlreadyExists) {
				t.Errorf("err = %v, want ErrUserAlreadyExists", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.seedUser("alice", "alice@example.com", "s3cret-password")

	resp, err := f.svc.Login(ctx, &request.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "s3cret-password",
	}, service.ClientMeta{IP: "10.0.0.1", UserAgent: "test"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if resp.User.ID != user.ID {
		t.Errorf("user ID = %d, want %d", resp.User.ID, user.ID)
	}
	if resp.User.LastLogin == nil {
		t.Error("last login not set on response")
	}
	stored, _ := f.users.GetByID(ctx, user.ID)
	if stored.LastLogin == nil {
		t.Error("last login not persisted")
	}
	if got := f.activity.LastAction(); got != entity.ActionLogin {
		t.Errorf("last activity = %q, want %q", got, entity.ActionLogin)
	}
}

func TestLoginByEmail(t *testing.T) {
	f := newAuthFixture()
	f.seedUser("alice", "alice@example.com", "s3cret-password")

	resp, err := f.svc.Login(context.Background(), &request.LoginRequest{
		UsernameOrEmail: "alice@example.com",
		Password:        "s3cret-password",
	}, service.ClientMeta{})
	if err != nil {
		t.Fatalf("Login by email: %v", err)
	}
	if resp.User.Username != "alice" {
		t.Errorf("username = %q, want alice", resp.User.Username)
	}
}

func TestLoginFailures(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser("alice", "alice@example.com", "s3cret-password")
	inactive := f.seedUser("bob", "bob@example.com", "s3cret-password")
	inactive.IsActive = false

	cases := []struct {
		name string
		req  *request.LoginRequest
		want error
	}{
		{"unknown user", &request.LoginRequest{UsernameOrEmail: "nobody", Password: "whatever"}, service.ErrInvalidCredentials},
		{"wrong password", &request.LoginRequest{UsernameOrEmail: "alice", Password: "wrong"}, service.ErrInvalidCredentials},
		{"inactive user", &request.LoginRequest{UsernameOrEmail: "bob", Password: "s3cret-password"}, service.ErrUserInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, tc.req, service.ClientMeta{})
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser("alice", "alice@example.com", "s3cret-password")

	login, err := f.svc.Login(ctx, &request.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "s3cret-password",
	}, service.ClientMeta{})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	resp, err := f.svc.Verify(ctx, login.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !resp.Valid || resp.User.Username != "alice" {
		t.Errorf("unexpected verify response: %+v", resp)
	}

	if _, err := f.svc.Verify(ctx, "not-a-jwt"); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("garbage token err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedUser("alice", "alice@example.com", "s3cret-password")

	login, err := f.svc.Login(ctx, &request.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "s3cret-password",
	}, service.ClientMeta{})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	old := login.Tokens.RefreshToken

	refreshed, err := f.svc.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: old})
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.Tokens.RefreshToken == old {
		t.Error("refresh must issue a new token")
	}

	// The old token is revoked on rotation and cannot be replayed.
	stored, _ := f.tokens.GetByToken(ctx, old)
	if stored == nil || !stored.Revoked {
		t.Error("old refresh token not revoked")
	}
	if _, err := f.svc.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: old}); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("replayed token err = %v, want ErrInvalidToken", err)
	}

	// The new token still works.
	if _, err := f.svc.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: refreshed.Tokens.RefreshToken}); err != nil {
		t.Errorf("rotated token rejected: %v", err)
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser("alice", "alice@example.com", "s3cret-password")

	// A well-formed JWT that was never persisted must be rejected.
	tokenString, _, err := testJWTProvider().GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	_, err = f.svc.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: tokenString})
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.seedUser("alice", "alice@example.com", "old-password")

	login, err := f.svc.Login(ctx, &request.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "old-password",
	}, service.ClientMeta{})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := f.svc.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-password-1",
	}); !errors.Is(err, service.ErrWrongPassword) {
		t.Errorf("wrong old password err = %v, want ErrWrongPassword", err)
	}

	if err := f.svc.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password-1",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	// New password works, old one does not.
	if _, err := f.svc.Login(ctx, &request.LoginRequest{UsernameOrEmail: "alice", Password: "new-password-1"}, service.ClientMeta{}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := f.svc.Login(ctx, &request.LoginRequest{UsernameOrEmail: "alice", Password: "old-password"}, service.ClientMeta{}); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}

	// Every outstanding session is revoked.
	stored, _ := f.tokens.GetByToken(ctx, login.Tokens.RefreshToken)
	if stored == nil || !stored.Revoked {
		t.Error("outstanding refresh token not revoked after password change")
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.seedUser("alice", "alice@example.com", "s3cret-password")

	login, err := f.svc.Login(ctx, &request.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "s3cret-password",
	}, service.ClientMeta{})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := f.svc.Logout(ctx, user.ID, login.Tokens.RefreshToken, service.ClientMeta{}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	stored, _ := f.tokens.GetByToken(ctx, login.Tokens.RefreshToken)
	if stored == nil || !stored.Revoked {
		t.Error("refresh token not revoked on logout")
	}
	if got := f.activity.LastAction(); got != entity.ActionLogout {
		t.Errorf("last activity = %q, want %q", got, entity.ActionLogout)
	}
}

func TestActivityFailureDoesNotFailLogin(t *testing.T) {
	f := newAuthFixture()
	f.seedUser("alice", "alice@example.com", "s3cret-password")
	f.activity.CreateErr = errors.New("audit store down")

	if _, err := f.svc.Login(context.Background(), &request.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "s3cret-password",
	}, service.ClientMeta{}); err != nil {
		t.Errorf("login should survive an audit write failure, got %v", err)
	}
}
