package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimit caps requests per second per client IP using a redis counter.
func RateLimit(rdb *redis.Client, maxRequests int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		count, _ := rdb.Get(c.Request.Context(), key).Int()
		if count >= maxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		rdb.Incr(c.Request.Context(), key)
		rdb.Expire(c.Request.Context(), key, time.Second)
		c.Next()
	}
}
