package httpapi

import (
	"net/http"
	"strconv"

	"hr-platform/internal/auth"
	"hr-platform/internal/requests"
	"hr-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListRequests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	f := requests.ListFilter{
		Status:     requests.Status(c.Query("status")),
		EmployeeID: c.Query("employee_id"),
		Limit:      limit,
		Offset:     offset,
	}

	page, total, err := h.Requests.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": page, "total": total})
}

func (h Handlers) GetRequest(c *gin.Context) {
	r, approvals, err := h.Requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": r, "approvals": approvals})
}

func (h Handlers) CreateRequest(c *gin.Context) {
	ident, err := auth.IdentityFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var in requests.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	r, err := h.Requests.Create(c.Request.Context(), ident.UserID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": r})
}

type decisionRequest struct {
	Note string `json:"note"`
}

func (h Handlers) ApproveRequest(c *gin.Context) {
	h.decide(c, requests.StatusApproved)
}

func (h Handlers) RejectRequest(c *gin.Context) {
	h.decide(c, requests.StatusRejected)
}

func (h Handlers) decide(c *gin.Context, decision requests.Status) {
	ctx := c.Request.Context()
	ident, err := auth.IdentityFrom(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req decisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badJSON(c)
			return
		}
	}

	id := c.Param("id")
	var r requests.Request
	if decision == requests.StatusApproved {
		r, err = h.Requests.Approve(ctx, id, ident.UserID, ident.Role, req.Note)
	} else {
		r, err = h.Requests.Reject(ctx, id, ident.UserID, ident.Role, req.Note)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if h.Audit != nil {
		if err := h.Audit.LogRequestDecision(ctx, ident.UserID, ident.Role, c.ClientIP(), id, string(decision), req.Note); err != nil {
			logger.From(ctx).Warn("audit write failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"request": r})
}

// CancelRequest withdraws a pending request; only its submitter may do so.
func (h Handlers) CancelRequest(c *gin.Context) {
	ident, err := auth.IdentityFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	r, err := h.Requests.Cancel(c.Request.Context(), c.Param("id"), ident.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": r})
}
