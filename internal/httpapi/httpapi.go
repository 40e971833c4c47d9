package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hr-platform/internal/auth"
	"hr-platform/internal/dashboard"
	"hr-platform/internal/departments"
	"hr-platform/internal/employees"
	"hr-platform/internal/requests"
	"hr-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth        *auth.Service
	Employees   *employees.Service
	Departments *departments.Service
	Requests    *requests.Service
	Dashboard   *dashboard.Service
	Audit       AuditLogger

	// Production hides internal error detail from clients.
	Production bool
}

// AuditLogger is the slice of the audit service the handlers need.
// Audit failures are logged, never surfaced to clients.
type AuditLogger interface {
	LogLogin(ctx context.Context, userID, role, ip string) error
	LogLoginFailed(ctx context.Context, ip, reason string) error
	LogAccountStatus(ctx context.Context, actorID, actorRole, ip, targetAccountID string, active bool) error
	LogRequestDecision(ctx context.Context, actorID, actorRole, ip, requestID, decision, comment string) error
}

// fail writes an error response. Unmapped errors become opaque 500s in
// production; in dev the detail is passed through to ease debugging.
func (h Handlers) fail(c *gin.Context, err error) {
	status, msg := h.mapError(err)
	if status == http.StatusInternalServerError {
		logger.From(c.Request.Context()).Error("request failed",
			"path", c.FullPath(), "err", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func (h Handlers) mapError(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, auth.ErrTokenExpiredTooLong):
		return http.StatusUnauthorized, "session expired, log in again"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, auth.ErrAccountInactive):
		return http.StatusForbidden, "account is deactivated"
	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, auth.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"

	case errors.Is(err, employees.ErrCodeTaken),
		errors.Is(err, departments.ErrCodeTaken):
		return http.StatusConflict, "code already exists"
	case errors.Is(err, departments.ErrHasEmployees):
		return http.StatusConflict, "department still has active employees"
	case errors.Is(err, requests.ErrNotPending):
		return http.StatusConflict, "request is not pending"
	case errors.Is(err, requests.ErrNotOwner):
		return http.StatusForbidden, "only the submitter may cancel"

	case errors.Is(err, employees.ErrNotFound),
		errors.Is(err, departments.ErrNotFound),
		errors.Is(err, requests.ErrNotFound):
		return http.StatusNotFound, "not found"
	}

	for _, sentinel := range []error{
		auth.ErrInvalidInput,
		employees.ErrInvalidInput,
		departments.ErrInvalidInput,
		requests.ErrInvalidInput,
	} {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, validationMessage(err, sentinel)
		}
	}

	if h.Production {
		return http.StatusInternalServerError, "internal error"
	}
	return http.StatusInternalServerError, err.Error()
}

// validationMessage turns a wrapped validation error into a client-facing
// message carrying the field detail. The sentinel's package prefix stays
// server-side; a bare sentinel maps to the generic message.
func validationMessage(err, sentinel error) string {
	detail := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if detail == "" || detail == err.Error() {
		return "invalid input"
	}
	return "invalid input: " + detail
}

func badJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
}
