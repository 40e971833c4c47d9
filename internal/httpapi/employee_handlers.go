package httpapi

import (
	"net/http"
	"strconv"

	"hr-platform/internal/employees"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListEmployees(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	f := employees.ListFilter{
		Search:       c.Query("q"),
		DepartmentID: c.Query("department_id"),
		ActiveOnly:   c.Query("active") == "true",
		Limit:        limit,
		Offset:       offset,
	}

	page, total, err := h.Employees.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": page, "total": total})
}

func (h Handlers) GetEmployee(c *gin.Context) {
	e, err := h.Employees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": e})
}

func (h Handlers) CreateEmployee(c *gin.Context) {
	var in employees.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	e, err := h.Employees.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employee": e})
}

func (h Handlers) UpdateEmployee(c *gin.Context) {
	var in employees.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	e, err := h.Employees.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": e})
}

// TerminateEmployee soft-deletes: the record stays, marked inactive with a
// termination timestamp.
func (h Handlers) TerminateEmployee(c *gin.Context) {
	e, err := h.Employees.Terminate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": e})
}
