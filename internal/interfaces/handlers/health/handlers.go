package health

import (
	"context"
	"strconv"
	"time"

	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Pinger abstracts the DB liveness check.
type Pinger interface {
	Ping() error
}

// Handlers serves health/status endpoints from the Redis request stats
// written by the HealthMarker middleware.
type Handlers struct {
	Rdb            *redis.Client
	DB             Pinger
	HealthAdminKey string
}

// JSON GET /health/json — liveness plus aggregate request stats.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx := context.Background()

	dbOK := false
	if h.DB != nil && h.DB.Ping() == nil {
		dbOK = true
	}
	redisOK := false
	if h.Rdb != nil && h.Rdb.Ping(ctx).Err() == nil {
		redisOK = true
	}

	stats := map[string]interface{}{}
	if redisOK {
		total, _ := h.Rdb.Get(ctx, middleware.KeyReqTotal).Int64()
		errors, _ := h.Rdb.Get(ctx, middleware.KeyReqErrors).Int64()
		resCount, _ := h.Rdb.Get(ctx, middleware.KeyResCount).Int64()
		resTimeStr, _ := h.Rdb.Get(ctx, middleware.KeyResTime).Result()
		resTime, _ := strconv.ParseFloat(resTimeStr, 64)
		avg := 0.0
		if resCount > 0 {
			avg = resTime / float64(resCount)
		}
		stats = map[string]interface{}{
			"req_total":  total,
			"req_errors": errors,
			"avg_res_ms": avg,
			"checked_at": time.Now().UTC(),
		}
	}

	return response.Success(c, "Health", fiber.Map{
		"db":    dbOK,
		"redis": redisOK,
		"stats": stats,
	}, nil)
}

// Reset GET /health/reset — clears counters (requires admin key).
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.HealthAdminKey == "" || c.Query("key") != h.HealthAdminKey {
		return response.Unauthorized(c, "Unauthorized")
	}
	if h.Rdb != nil {
		ctx := context.Background()
		_ = h.Rdb.Del(ctx,
			middleware.KeyReqTotal,
			middleware.KeyReqErrors,
			middleware.KeyResTime,
			middleware.KeyResCount,
			middleware.KeyLastReq,
		).Err()
	}
	return response.Success(c, "Health counters reset", nil, nil)
}
