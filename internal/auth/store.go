package auth

import (
	"context"
	"time"
)

// Account is a login principal. PasswordHash never leaves this package;
// handlers only ever see the sanitized view.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Active       bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// AccountView is the sanitized shape returned to clients.
type AccountView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (a Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		Active:    a.Active,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
}

// Store is the credential store contract.
//
// Lookups return ErrAccountNotFound when no row matches. Accounts are never
// hard-deleted; SetActive false is the only deactivation path and is also
// what invalidates outstanding tokens before their natural expiry.
type Store interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	Create(ctx context.Context, a Account) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context) ([]Account, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
