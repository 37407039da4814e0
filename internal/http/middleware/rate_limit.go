package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/skillchain/skillchain-backend/internal/logger"
)

// RateLimitMiddleware создаёт middleware для ограничения количества запросов
// со стором в памяти. По умолчанию: 10 запросов в минуту с одного IP.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	rate := normalizeRate(limit, period)
	return rateLimitWithStore(memory.NewStore(), rate)
}

// RateLimitWithRedis создаёт middleware со стором в Redis, чтобы лимиты
// действовали на все экземпляры сервера. При ошибке инициализации стора
// происходит откат на стор в памяти.
func RateLimitWithRedis(client *redis.Client, limit int64, period time.Duration) gin.HandlerFunc {
	rate := normalizeRate(limit, period)

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "skillchain:ratelimit",
	})
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithError(err).Warn("rate limit: redis store недоступен, используется память")
		}
		return rateLimitWithStore(memory.NewStore(), rate)
	}

	return rateLimitWithStore(store, rate)
}

func normalizeRate(limit int64, period time.Duration) limiter.Rate {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = 1 * time.Minute
	}
	return limiter.Rate{Period: period, Limit: limit}
}

func rateLimitWithStore(store limiter.Store, rate limiter.Rate) gin.HandlerFunc {
	instance := limiter.New(store, rate)

	return func(c *gin.Context) {
		key := c.ClientIP()
		context, err := instance.Get(c, key)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", context.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", context.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", context.Reset))

		if context.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "слишком много запросов, попробуйте позже",
			})
			return
		}

		c.Next()
	}
}
