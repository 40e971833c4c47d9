package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hr-platform/pkg/logger"

	"github.com/google/uuid"
)

// Service implements login, token refresh and per-request authorization
// against a credential store. It holds no per-request state; the token is
// the only thing a client keeps between calls.
type Service struct {
	store  Store
	tokens *Manager
	cache  IdentityCache
	grace  time.Duration
	clock  func() time.Time
}

type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.clock = fn
		}
	}
}

// WithIdentityCache enables the bounded-staleness account cache used by the
// authorization path. Without it every request reloads from the store.
func WithIdentityCache(c IdentityCache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

func NewService(store Store, tokens *Manager, refreshGrace time.Duration, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		tokens: tokens,
		grace:  refreshGrace,
		clock:  time.Now,
	}
	if s.grace <= 0 {
		s.grace = 7 * 24 * time.Hour
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/* ===================== LOGIN ===================== */

// Login verifies email+password and returns a fresh token with the
// sanitized account. Unknown email and wrong password produce the same
// error so responses cannot be used to enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (string, AccountView, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", AccountView{}, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return "", AccountView{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	acct, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", AccountView{}, ErrInvalidCredentials
		}
		return "", AccountView{}, err
	}
	if !acct.Active {
		return "", AccountView{}, ErrAccountInactive
	}
	if err := VerifyPassword(acct.PasswordHash, password); err != nil {
		return "", AccountView{}, ErrInvalidCredentials
	}

	now := s.clock().UTC()

	// The timestamp is informational; a failed write must not fail the login.
	// Concurrent logins race on it with last-write-wins semantics.
	if err := s.store.UpdateLastLogin(ctx, acct.ID, now); err != nil {
		logger.From(ctx).Warn("last_login update failed", "user_id", acct.ID, "err", err)
	} else {
		acct.LastLogin = &now
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, acct.ID)
	}

	token, err := s.tokens.Issue(now, acct.ID, acct.Email, acct.Role)
	if err != nil {
		return "", AccountView{}, err
	}
	return token, acct.View(), nil
}

/* ===================== REFRESH ===================== */

// Refresh accepts a possibly-expired token and re-mints one when the
// signature is valid and expiry is within the grace window. The new token
// gets the full configured lifetime from now; grace already consumed does
// not shorten it.
func (s *Service) Refresh(ctx context.Context, token string) (string, AccountView, error) {
	now := s.clock().UTC()

	claims, err := s.tokens.VerifyAllowExpired(token, now)
	if err != nil {
		return "", AccountView{}, err
	}
	if exp := claims.ExpiresAt; exp != nil && now.After(exp.Time) {
		if now.Sub(exp.Time) > s.grace {
			return "", AccountView{}, ErrTokenExpiredTooLong
		}
	}

	acct, err := s.loadAccount(ctx, claims.UserID)
	if err != nil {
		return "", AccountView{}, err
	}
	if !acct.Active {
		return "", AccountView{}, ErrAccountInactive
	}

	fresh, err := s.tokens.Issue(now, acct.ID, acct.Email, acct.Role)
	if err != nil {
		return "", AccountView{}, err
	}
	return fresh, acct.View(), nil
}

/* ===================== AUTHORIZE ===================== */

// Authorize gates a single request: strict token verification (no grace),
// then a reload of live account state. The role embedded in the token is
// only a snapshot; the reloaded account is what downstream handlers see.
func (s *Service) Authorize(ctx context.Context, token string) (Identity, error) {
	claims, err := s.tokens.Verify(token, s.clock().UTC())
	if err != nil {
		return Identity{}, err
	}

	acct, err := s.loadAccount(ctx, claims.UserID)
	if err != nil {
		return Identity{}, err
	}
	if !acct.Active {
		return Identity{}, ErrAccountInactive
	}

	return Identity{
		UserID: acct.ID,
		Email:  acct.Email,
		Name:   acct.Name,
		Role:   acct.Role,
		Active: acct.Active,
	}, nil
}

// Account returns the sanitized view of a single account.
func (s *Service) Account(ctx context.Context, id string) (AccountView, error) {
	acct, err := s.store.FindByID(ctx, id)
	if err != nil {
		return AccountView{}, err
	}
	return acct.View(), nil
}

/* ===================== ADMIN OPS ===================== */

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Register creates a new account. Role validity is the caller's concern
// (internal/rbac owns the role set); this only enforces shape.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AccountView, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return AccountView{}, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return AccountView{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Role == "" {
		return AccountView{}, fmt.Errorf("%w: role is required", ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return AccountView{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return AccountView{}, err
	}

	acct := Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Active:       true,
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.store.Create(ctx, acct); err != nil {
		return AccountView{}, err
	}
	return acct.View(), nil
}

// SetAccountActive toggles the soft-delete flag. Deactivation is the only
// way to cut off outstanding tokens before they expire, so the cached
// identity is dropped immediately.
func (s *Service) SetAccountActive(ctx context.Context, id string, active bool) (AccountView, error) {
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return AccountView{}, err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
	return s.Account(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context) ([]AccountView, error) {
	accts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AccountView, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.View())
	}
	return out, nil
}

/* ===================== INTERNAL ===================== */

func (s *Service) loadAccount(ctx context.Context, id string) (Account, error) {
	if s.cache != nil {
		if a, ok, err := s.cache.Get(ctx, id); err == nil && ok {
			return a, nil
		}
	}
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, a)
	}
	return a, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", ErrInvalidInput
	}
	return email, nil
}
