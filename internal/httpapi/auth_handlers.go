package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"hr-platform/internal/auth"
	"hr-platform/internal/obs"
	"hr-platform/internal/rbac"
	"hr-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and issues a session token.
// Failures are deliberately uniform: clients cannot tell an unknown email
// from a wrong password.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	ctx := c.Request.Context()
	token, account, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			obs.Login(obs.OutcomeInvalidCredentials)
			h.auditLoginFailed(c, "invalid credentials")
		case errors.Is(err, auth.ErrAccountInactive):
			obs.Login(obs.OutcomeInactive)
			h.auditLoginFailed(c, "account inactive")
			// At login the caller holds no session yet: 401, not the 403
			// used when an existing session hits a deactivated account.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
			return
		default:
			obs.Login(obs.OutcomeError)
		}
		h.fail(c, err)
		return
	}

	obs.Login(obs.OutcomeSuccess)
	if h.Audit != nil {
		if err := h.Audit.LogLogin(ctx, account.ID, account.Role, c.ClientIP()); err != nil {
			logger.From(ctx).Warn("audit write failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": account})
}

func (h Handlers) auditLoginFailed(c *gin.Context, reason string) {
	if h.Audit == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.Audit.LogLoginFailed(ctx, c.ClientIP(), reason); err != nil {
		logger.From(ctx).Warn("audit write failed", "err", err)
	}
}

type refreshRequest struct {
	Token string `json:"token"`
}

// Refresh exchanges a token for a fresh one. The presented token may be
// expired up to the configured grace window; the account must still be
// active.
func (h Handlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}

	token, account, err := h.Auth.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpiredTooLong):
			obs.Refresh(obs.OutcomeExpiredTooLong)
		case errors.Is(err, auth.ErrInvalidToken):
			obs.Refresh(obs.OutcomeInvalidToken)
		case errors.Is(err, auth.ErrAccountInactive):
			obs.Refresh(obs.OutcomeInactive)
		default:
			obs.Refresh(obs.OutcomeError)
		}
		h.fail(c, err)
		return
	}

	obs.Refresh(obs.OutcomeSuccess)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": account})
}

// Me returns the authenticated account, reloaded from storage by the auth
// middleware on this very request.
func (h Handlers) Me(c *gin.Context) {
	ident, err := auth.IdentityFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	account, err := h.Auth.Account(c.Request.Context(), ident.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Register creates an account. Admin only; there is no self-service signup.
func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	if !rbac.ValidRole(req.Role) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	account, err := h.Auth.Register(c.Request.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": account})
}

// ListUsers returns all accounts. Admin only.
func (h Handlers) ListUsers(c *gin.Context) {
	accounts, err := h.Auth.ListAccounts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": accounts})
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

// SetUserActive activates or deactivates an account. Deactivation takes
// effect on the target's next request.
func (h Handlers) SetUserActive(c *gin.Context) {
	id := c.Param("id")
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "active (bool) required"})
		return
	}

	ctx := c.Request.Context()
	ident, err := auth.IdentityFrom(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if ident.UserID == id && !*req.Active {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "cannot deactivate your own account"})
		return
	}

	account, err := h.Auth.SetAccountActive(ctx, id, *req.Active)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.Audit != nil {
		if err := h.Audit.LogAccountStatus(ctx, ident.UserID, ident.Role, c.ClientIP(), id, *req.Active); err != nil {
			logger.From(ctx).Warn("audit write failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}
