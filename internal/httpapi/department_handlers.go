package httpapi

import (
	"net/http"

	"hr-platform/internal/departments"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListDepartments(c *gin.Context) {
	list, err := h.Departments.List(c.Request.Context(), c.Query("include_inactive") == "true")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": list})
}

func (h Handlers) GetDepartment(c *gin.Context) {
	d, err := h.Departments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": d})
}

type departmentRequest struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	ManagerID  string `json:"manager_id"`
	CostCenter string `json:"cost_center"`
}

func (h Handlers) CreateDepartment(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	d, err := h.Departments.Create(c.Request.Context(), req.Name, req.Code, req.ManagerID, req.CostCenter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"department": d})
}

func (h Handlers) UpdateDepartment(c *gin.Context) {
	var in departments.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	d, err := h.Departments.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": d})
}

func (h Handlers) DeactivateDepartment(c *gin.Context) {
	if err := h.Departments.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
