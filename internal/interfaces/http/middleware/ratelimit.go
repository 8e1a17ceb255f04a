package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

// RateLimiter counts requests per client IP in fixed Redis windows. A nil
// limiter, or one without a client, lets everything through.
type RateLimiter struct {
	client *redis.Client
	scope  string
	limit  int64
	window time.Duration
	logger logger.Interface
}

// NewRateLimiter allows limit requests per window for each client IP.
// scope keeps the counters of different routes apart.
func NewRateLimiter(client *redis.Client, scope string, limit int, window time.Duration, log logger.Interface) *RateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RateLimiter{client: client, scope: scope, limit: int64(limit), window: window, logger: log}
}

// hit increments the caller's counter for the current window and returns
// the new count and when the window ends.
func (rl *RateLimiter) hit(ctx context.Context, ip string, now time.Time) (int64, time.Time, error) {
	bucket := now.Unix() / int64(rl.window/time.Second)
	resetAt := time.Unix((bucket+1)*int64(rl.window/time.Second), 0)
	key := fmt.Sprintf("hotline:ratelimit:%s:%s:%d", rl.scope, ip, bucket)

	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, rl.window+time.Second)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, err
	}
	return incr.Val(), resetAt, nil
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.client == nil {
			c.Next()
			return
		}

		now := time.Now()
		count, resetAt, err := rl.hit(c.Request.Context(), c.ClientIP(), now)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > rl.limit {
			retry := int(resetAt.Sub(now).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
