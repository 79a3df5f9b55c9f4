package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start),
			"client_ip": c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request processed")
		}
	}
}

// RequestTimeout bounds the request context handed to handlers.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// NewRateLimitStore returns a redis-backed limiter store, or an in-memory one
// when no client is given.
func NewRateLimitStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memory.NewStore(), nil
	}
	store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   "rate_limiter:report_export",
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis limiter store: %w", err)
	}
	return store, nil
}

// ExportRateLimiter limits export requests per client ip. rate uses the
// limiter format, e.g. "5-M" for five requests per minute.
func ExportRateLimiter(rate string, store limiter.Store) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse export rate %q: %w", rate, err)
	}

	return mgin.NewMiddleware(
		limiter.New(store, parsed),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many export requests"})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logrus.WithError(err).Error("rate limiter failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}),
	), nil
}
