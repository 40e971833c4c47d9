package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"hr-platform/internal/config"
)

type testEnv struct {
	svc   *Service
	store *MemoryStore
	now   *time.Time
	admin Account
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	m, err := NewManager(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 24 * time.Hour})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	store := NewMemoryStore()
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := Account{
		ID:           "acct-1",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         "admin",
		Active:       true,
		CreatedAt:    time.Unix(1690000000, 0).UTC(),
	}
	if err := store.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed: %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	env := &testEnv{store: store, now: &now, admin: admin}
	env.svc = NewService(store, m, 7*24*time.Hour, WithClock(func() time.Time { return *env.now }))
	return env
}

func (e *testEnv) advance(d time.Duration) { *e.now = e.now.Add(d) }

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)

	token, user, err := env.svc.Login(context.Background(), "Admin@Example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "acct-1" || user.Role != "admin" {
		t.Fatalf("unexpected user view: %+v", user)
	}

	// Token round-trips through the authorizer immediately after issuance.
	id, err := env.svc.Authorize(context.Background(), token)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if id.UserID != user.ID || id.Role != user.Role {
		t.Fatalf("identity mismatch: %+v vs %+v", id, user)
	}

	stored, _ := env.store.FindByID(context.Background(), "acct-1")
	if stored.LastLogin == nil || !stored.LastLogin.Equal(*env.now) {
		t.Fatalf("expected last_login recorded at login time")
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	env := newTestEnv(t)

	_, _, errUnknown := env.svc.Login(context.Background(), "nobody@example.com", "admin123")
	_, _, errWrong := env.svc.Login(context.Background(), "admin@example.com", "wrongpass")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("error shapes must not distinguish the failing half")
	}

	stored, _ := env.store.FindByID(context.Background(), "acct-1")
	if stored.LastLogin != nil {
		t.Fatalf("failed login must not touch last_login")
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	if err := env.store.SetActive(context.Background(), "acct-1", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, _, err := env.svc.Login(context.Background(), "admin@example.com", "admin123")
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive even with correct password, got %v", err)
	}
}

func TestLogin_InputPolicyBeforeLookup(t *testing.T) {
	env := newTestEnv(t)

	if _, _, err := env.svc.Login(context.Background(), "", "admin123"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
	}
	if _, _, err := env.svc.Login(context.Background(), "admin@example.com", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestRefresh_WithinGraceResetsClock(t *testing.T) {
	env := newTestEnv(t)

	token, _, err := env.svc.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// One second past expiry: well inside the 7 day grace window.
	env.advance(24*time.Hour + time.Second)
	refreshAt := *env.now

	fresh, user, err := env.svc.Refresh(context.Background(), token)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if user.ID != "acct-1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := env.svc.tokens.Verify(fresh, refreshAt)
	if err != nil {
		t.Fatalf("fresh token must verify: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(refreshAt.Add(24 * time.Hour)) {
		t.Fatalf("refresh must grant the full lifetime from refresh time, got exp %v", claims.ExpiresAt.Time)
	}
}

func TestRefresh_BeyondGrace(t *testing.T) {
	env := newTestEnv(t)

	token, _, err := env.svc.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	env.advance(24*time.Hour + 8*24*time.Hour)

	_, _, err = env.svc.Refresh(context.Background(), token)
	if !errors.Is(err, ErrTokenExpiredTooLong) {
		t.Fatalf("expected ErrTokenExpiredTooLong, got %v", err)
	}
}

func TestRefresh_UnexpiredTokenAlsoRefreshes(t *testing.T) {
	env := newTestEnv(t)

	token, _, err := env.svc.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	env.advance(time.Hour)
	if _, _, err := env.svc.Refresh(context.Background(), token); err != nil {
		t.Fatalf("refresh of live token: %v", err)
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	env := newTestEnv(t)
	if _, _, err := env.svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefresh_DeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)

	token, _, err := env.svc.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := env.store.SetActive(context.Background(), "acct-1", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, _, err := env.svc.Refresh(context.Background(), token); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAuthorize_ExpiredTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	token, _, err := env.svc.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	env.advance(25 * time.Hour)
	if _, err := env.svc.Authorize(context.Background(), token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthorize_DeactivationTakesEffectImmediately(t *testing.T) {
	env := newTestEnv(t)

	token, _, err := env.svc.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := env.svc.Authorize(context.Background(), token); err != nil {
		t.Fatalf("authorize before deactivation: %v", err)
	}
	if _, err := env.svc.SetAccountActive(context.Background(), "acct-1", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := env.svc.Authorize(context.Background(), token); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive right after deactivation, got %v", err)
	}
}

func TestAuthorize_DeletedSubject(t *testing.T) {
	env := newTestEnv(t)

	m := env.svc.tokens
	tok, err := m.Issue(*env.now, "ghost", "ghost@example.com", "hr")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := env.svc.Authorize(context.Background(), tok); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Register(context.Background(), RegisterInput{
		Email:    "admin@example.com",
		Password: "secret99",
		Name:     "Other",
		Role:     "hr",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_CreatesLoginableAccount(t *testing.T) {
	env := newTestEnv(t)

	view, err := env.svc.Register(context.Background(), RegisterInput{
		Email:    "New.Person@Example.com",
		Password: "secret99",
		Name:     "New Person",
		Role:     "hr",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if view.Email != "new.person@example.com" {
		t.Fatalf("expected normalized email, got %q", view.Email)
	}

	if _, _, err := env.svc.Login(context.Background(), "new.person@example.com", "secret99"); err != nil {
		t.Fatalf("login with new account: %v", err)
	}
}
