package httpapi

import (
	"net/http"
	"time"

	"hr-platform/internal/obs"
	"hr-platform/pkg/logger"
	"hr-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit caps login attempts per client IP in a fixed window.
// The limiter fails open: a Redis outage must not lock everyone out.
func LoginRateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		ok, err := utils.AllowRate(ctx, rdb, "ratelimit:login:"+c.ClientIP(), limit, window)
		if err != nil {
			logger.From(ctx).Warn("rate limiter unavailable", "err", err)
			c.Next()
			return
		}
		if !ok {
			obs.Login(obs.OutcomeRateLimited)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
			return
		}
		c.Next()
	}
}
