package auth

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/kuma-mall/admin-backend/internal/web"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter decides whether another attempt identified by key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type redisLimiter struct {
	client   *redis.Client
	attempts int64
	window   time.Duration
}

// NewRedisLimiter allows attempts per key within a fixed window, counted in Redis.
func NewRedisLimiter(client *redis.Client, attempts int64, window time.Duration) Limiter {
	return &redisLimiter{client: client, attempts: attempts, window: window}
}

// Allow counts the attempt and arms the window in one MULTI/EXEC. EXPIRE NX runs on every
// attempt so a key left without a TTL by an earlier failure gets one on the next call.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = "login_limit:" + key
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return true, err
	}
	return incr.Val() <= l.attempts, nil
}

type noopLimiter struct{}

// NoopLimiter allows everything. Used when no Redis is configured.
func NoopLimiter() Limiter { return noopLimiter{} }

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

// LimitByIP rejects requests with 429 once the client address exhausts its attempts.
// Limiter failures let the request through.
func LimitByIP(limiter Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.Warn("login limiter unavailable", zap.Error(err))
			}
			if !ok {
				web.JSON(w, http.StatusTooManyRequests, web.Message{Message: "too many login attempts, try again later"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
