package auth

import (
	"context"
	"log/slog"
	"time"

	"hr-platform/internal/config"

	"github.com/google/uuid"
)

// EnsureAdmin creates the initial administrator account on first run.
//
// This is an explicit, env-gated startup step. It is never triggered from
// the login path: unauthenticated traffic must not be able to provoke
// account creation. Idempotent: if any account with the given role exists
// the call is a no-op, so re-deploys never create duplicates.
func EnsureAdmin(ctx context.Context, store Store, cfg config.BootstrapConfig, adminRole string, log *slog.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	n, err := store.CountByRole(ctx, adminRole)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("bootstrap skipped, administrator already present")
		return nil
	}

	hash, err := HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}

	acct := Account{
		ID:           uuid.NewString(),
		Email:        cfg.Email,
		PasswordHash: hash,
		Name:         name,
		Role:         adminRole,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.Create(ctx, acct); err != nil {
		return err
	}
	log.Info("bootstrap administrator created", "email", cfg.Email)
	return nil
}
