package auth

import (
	"errors"
	"time"

	"hr-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// clockSkewLeeway tolerates small client/server clock drift during strict
// verification. The refresh grace window is a separate, much larger policy.
const clockSkewLeeway = 30 * time.Second

// Manager signs and verifies the platform's bearer tokens.
// The signing secret is process-wide, read-only after startup, and must be
// identical across all instances of a multi-instance deployment.
type Manager struct {
	secret   []byte
	issuer   string
	audience string
	tokenTTL time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Manager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		tokenTTL: ttl,
	}, nil
}

// TokenTTL reports the configured token lifetime.
func (m *Manager) TokenTTL() time.Duration { return m.tokenTTL }

/* ===================== ISSUE ===================== */

// Issue mints a signed token for the account. Expiry is always
// now + configured lifetime; refresh resets the clock rather than
// extending the original window.
func (m *Manager) Issue(now time.Time, userID, email, role string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  audienceOrNil(m.audience),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

/* ===================== VERIFY ===================== */

// Verify checks signature and all claims strictly. Expired tokens fail with
// ErrTokenExpired so callers can tell the client to attempt a refresh;
// everything else fails with ErrInvalidToken.
func (m *Manager) Verify(tokenString string, now time.Time) (Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	if err := m.validate(claims, now); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAllowExpired checks the signature and every claim except expiry.
// An expired token is validated as of the instant it was still live, so
// issuer/audience/iat checks still apply. Callers own the grace policy and
// read ExpiresAt from the returned claims.
func (m *Manager) VerifyAllowExpired(tokenString string, now time.Time) (Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	asOf := now
	if exp := claims.ExpiresAt; exp != nil && asOf.After(exp.Time) {
		asOf = exp.Time.Add(-time.Second)
	}
	if err := m.validate(claims, asOf); err != nil {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

/* ===================== INTERNAL ===================== */

// parse checks the signature only; claim validation is separate so tests
// and the refresh path can supply their own notion of now.
func (m *Manager) parse(tokenString string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func (m *Manager) validate(claims Claims, now time.Time) error {
	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(clockSkewLeeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	if err := jwt.NewValidator(opts...).Validate(claims.RegisteredClaims); err != nil {
		return err
	}

	if claims.UserID == "" {
		return errors.New("user_id missing")
	}
	if claims.Role == "" {
		return errors.New("role missing")
	}
	return nil
}

func audienceOrNil(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}
