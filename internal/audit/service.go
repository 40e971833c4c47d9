package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only. No Update/Delete methods are provided.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// IMPORTANT:
// - Audit is internal-only. Do not expose these records to end users by default.
// - Callers should treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogLogin records a successful authentication.
func (s *Service) LogLogin(ctx context.Context, userID, role, ip string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeLogin,
		ActorUserID: userID,
		ActorRole:   role,
		IPAddress:   ip,
		TargetType:  "account",
		TargetID:    userID,
		Message:     "login succeeded",
	})
}

// LogLoginFailed records a rejected authentication attempt.
// The presented identifier is deliberately not stored verbatim for unknown
// accounts; the IP is what brute-force analysis keys on.
func (s *Service) LogLoginFailed(ctx context.Context, ip, reason string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeLoginFailed,
		IPAddress: ip,
		Message:   reason,
	})
}

// LogAccountStatus records an activation/deactivation by an administrator.
func (s *Service) LogAccountStatus(ctx context.Context, actorID, actorRole, ip, targetAccountID string, active bool) error {
	msg := "account deactivated"
	if active {
		msg = "account activated"
	}
	return s.Append(ctx, Event{
		Type:        EventTypeAccountStatus,
		ActorUserID: actorID,
		ActorRole:   actorRole,
		IPAddress:   ip,
		TargetType:  "account",
		TargetID:    targetAccountID,
		Message:     msg,
	})
}

// LogRequestDecision records an approval/rejection of an HR request.
func (s *Service) LogRequestDecision(ctx context.Context, actorID, actorRole, ip, requestID, decision, comment string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeRequestDecision,
		ActorUserID: actorID,
		ActorRole:   actorRole,
		IPAddress:   ip,
		TargetType:  "request",
		TargetID:    requestID,
		Message:     decision,
		Metadata:    comment,
	})
}
