package main

import (
	"net/http"

	"hr-platform/internal/auth"
	"hr-platform/internal/config"
	"hr-platform/internal/httpapi"
	"hr-platform/internal/obs"
	"hr-platform/internal/rbac"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, cfg config.Config, h httpapi.Handlers, authSvc *auth.Service, rdb *redis.Client) {
	if len(cfg.App.CORSOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = cfg.App.CORSOrigins
		cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
		r.Use(cors.New(cc))
	}

	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(obs.Handler()))

	api := r.Group("/api")

	// Session endpoints take no bearer token; login is rate limited per IP.
	api.POST("/auth/login",
		httpapi.LoginRateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow),
		h.Login)
	api.POST("/auth/refresh", h.Refresh)

	// Everything below reloads the account from storage on each request, so
	// deactivation cuts access immediately.
	protected := api.Group("")
	protected.Use(auth.RequireUser(authSvc))
	{
		protected.GET("/auth/me", h.Me)

		// Account administration (admin only).
		protected.POST("/auth/register", rbac.RequireAdmin(), h.Register)
		protected.GET("/users", rbac.RequireAdmin(), h.ListUsers)
		protected.PATCH("/users/:id/status", rbac.RequireAdmin(), h.SetUserActive)

		// Employee records: HR owns writes, managers may read.
		employees := protected.Group("/employees")
		{
			employees.GET("", h.ListEmployees)
			employees.GET("/:id", h.GetEmployee)
			employees.POST("", rbac.RequireAnyRole(rbac.RoleHR), h.CreateEmployee)
			employees.PUT("/:id", rbac.RequireAnyRole(rbac.RoleHR), h.UpdateEmployee)
			employees.DELETE("/:id", rbac.RequireAnyRole(rbac.RoleHR), h.TerminateEmployee)
		}

		departments := protected.Group("/departments")
		{
			departments.GET("", h.ListDepartments)
			departments.GET("/:id", h.GetDepartment)
			departments.POST("", rbac.RequireAnyRole(rbac.RoleHR), h.CreateDepartment)
			departments.PUT("/:id", rbac.RequireAnyRole(rbac.RoleHR), h.UpdateDepartment)
			departments.DELETE("/:id", rbac.RequireAnyRole(rbac.RoleHR), h.DeactivateDepartment)
		}

		// Requests: anyone signed in may file or cancel their own;
		// decisions need manager or HR.
		requests := protected.Group("/requests")
		{
			requests.GET("", h.ListRequests)
			requests.GET("/:id", h.GetRequest)
			requests.POST("", h.CreateRequest)
			requests.POST("/:id/approve", rbac.RequireAnyRole(rbac.RoleManager, rbac.RoleHR), h.ApproveRequest)
			requests.POST("/:id/reject", rbac.RequireAnyRole(rbac.RoleManager, rbac.RoleHR), h.RejectRequest)
			requests.POST("/:id/cancel", h.CancelRequest)
		}

		protected.GET("/dashboard/summary", h.DashboardSummary)
	}
}
