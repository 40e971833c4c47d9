package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h Handlers) DashboardSummary(c *gin.Context) {
	sum, err := h.Dashboard.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
