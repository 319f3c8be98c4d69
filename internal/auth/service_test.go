package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agence-judiciaire/aje-backend/internal/users"
	pkgAuth "github.com/agence-judiciaire/aje-backend/pkg/auth"
	"github.com/agence-judiciaire/aje-backend/pkg/auth/session"
	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/agence-judiciaire/aje-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const usersTestDDL = `CREATE TABLE users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	nom TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'admin',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	last_login_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
)`

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "aje-backend",
	ExpirationMinutes: 15,
}

type stubSessions struct {
	tokens  map[string]string
	revoked []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{tokens: map[string]string{}}
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + uuid.NewString()
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newAccessID := session.NewAccessID()
	newToken := "refresh-" + uuid.NewString()
	s.tokens[newAccessID] = newToken
	return newAccessID, newToken, nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	delete(s.tokens, accessID)
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubLimiter struct {
	denyScopes map[string]bool
	calls      []string
}

func (s *stubLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	s.calls = append(s.calls, scope)
	if s.denyScopes[scope] {
		return false, 0, nil
	}
	return true, 1, nil
}

type stubAudit struct {
	actions []enums.AuditAction
}

func (s *stubAudit) Record(_ context.Context, action enums.AuditAction, _ string, _, _ *uuid.UUID, _ map[string]any) {
	s.actions = append(s.actions, action)
}

type authFixture struct {
	svc      Service
	repo     *users.Repository
	sessions *stubSessions
	limiter  *stubLimiter
	audit    *stubAudit
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.Exec(usersTestDDL).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	fixture := &authFixture{
		repo:     users.NewRepository(conn),
		sessions: newStubSessions(),
		limiter:  &stubLimiter{denyScopes: map[string]bool{}},
		audit:    &stubAudit{},
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       fixture.repo,
		SessionManager: fixture.sessions,
		RateLimiter:    fixture.limiter,
		Audit:          fixture.audit,
		JWTConfig:      testJWTConfig,
		RateLimits: config.AuthRateLimitConfig{
			LoginWindow:     time.Minute,
			LoginEmailLimit: 5,
			LoginIPLimit:    20,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fixture.svc = svc
	return fixture
}

func (f *authFixture) seedUser(t *testing.T, email, password string, role enums.Role) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := f.repo.Create(context.Background(), users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		Nom:          "Agent Test",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestLoginIssuesTokenPair(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "agent@aje.gouv.fr", "correct horse battery", enums.RoleAdmin)

	resp, err := f.svc.Login(ctx, LoginRequest{
		Email:    "Agent@AJE.gouv.fr",
		Password: "correct horse battery",
		ClientIP: "203.0.113.7",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role in claims, got %s", claims.Role)
	}
	if _, ok := f.sessions.tokens[claims.ID]; !ok {
		t.Fatal("refresh session not stored under the jti")
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatal("expected last login to be stamped")
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != enums.AuditActionLogin {
		t.Fatalf("expected a login audit entry, got %v", f.audit.actions)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "agent@aje.gouv.fr", "correct horse battery", enums.RoleRedacteur)

	cases := []struct {
		name string
		req  LoginRequest
		prep func()
	}{
		{name: "wrong password", req: LoginRequest{Email: "agent@aje.gouv.fr", Password: "nope"}},
		{name: "unknown email", req: LoginRequest{Email: "ghost@aje.gouv.fr", Password: "correct horse battery"}},
		{name: "disabled account", req: LoginRequest{Email: "agent@aje.gouv.fr", Password: "correct horse battery"}, prep: func() {
			if err := f.repo.SetActive(ctx, user.ID, false); err != nil {
				t.Fatalf("deactivate: %v", err)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.prep != nil {
				tc.prep()
			}
			_, err := f.svc.Login(ctx, tc.req)
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if appErr.Message() != invalidCredentialsMessage {
				t.Fatalf("credential failures must share one message, got %q", appErr.Message())
			}
		})
	}
}

func TestLoginRateLimited(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "agent@aje.gouv.fr", "correct horse battery", enums.RoleAdmin)
	f.limiter.denyScopes["login:email:agent@aje.gouv.fr"] = true

	_, err := f.svc.Login(context.Background(), LoginRequest{
		Email:    "agent@aje.gouv.fr",
		Password: "correct horse battery",
	})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "agent@aje.gouv.fr", "correct horse battery", enums.RoleAdmin)

	login, err := f.svc.Login(ctx, LoginRequest{Email: "agent@aje.gouv.fr", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	oldClaims, err := pkgAuth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	refreshed, err := f.svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("refresh token should rotate")
	}
	if _, ok := f.sessions.tokens[oldClaims.ID]; ok {
		t.Fatal("old session should be gone after rotation")
	}

	// Replaying the consumed pair must fail.
	_, err = f.svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on replay, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "agent@aje.gouv.fr", "correct horse battery", enums.RoleAdmin)

	login, err := f.svc.Login(ctx, LoginRequest{Email: "agent@aje.gouv.fr", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := f.svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != claims.ID {
		t.Fatalf("expected session %s revoked, got %v", claims.ID, f.sessions.revoked)
	}
	if err := f.svc.Logout(ctx, "  "); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank session, got %v", err)
	}
}

func TestMeOmitsCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "agent@aje.gouv.fr", "correct horse battery", enums.RoleRedacteur)

	dto, err := f.svc.Me(ctx, user.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if dto.Email != "agent@aje.gouv.fr" || dto.Role != enums.RoleRedacteur {
		t.Fatalf("unexpected dto %+v", dto)
	}

	if _, err := f.svc.Me(ctx, uuid.New()); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
