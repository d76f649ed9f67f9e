// Package ratelimit guards the collection endpoint against abusive
// clients. Limiting is best-effort: a broken Redis must never break
// ingestion, so every failure path allows the request through.
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

func New(client *redis.Client, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
	}
}

// counterScript increments a per-key fixed-window counter atomically so
// concurrent requests cannot slip past the limit between GET and INCR.
var counterScript = redis.NewScript(`
	local key = KEYS[1]
	local max_requests = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = redis.call('GET', key)
	if current == false then
		redis.call('SET', key, 1, 'EX', window)
		return 1
	end
	if tonumber(current) < max_requests then
		redis.call('INCR', key)
		return 1
	end
	return 0
`)

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	res, err := counterScript.Run(ctx, l.client, []string{redisKey},
		l.maxRequests, int(l.window.Seconds())).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Middleware applies the limiter per client IP. Redis errors fail open.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := l.Allow(r.Context(), clientKey(r))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
