package middleware

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"acadiasafe/internal/render"
	"acadiasafe/pkg/e"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per remote address.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	every   rate.Limit
	burst   int
	idle    time.Duration
}

// Limit throttles each client IP to rps with the given burst. Buckets idle
// for longer than idle are dropped; the sweeper stops with ctx.
func Limit(ctx context.Context, rps float64, burst int, idle time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	l := &ipLimiter{
		clients: make(map[string]*client),
		every:   rate.Limit(rps),
		burst:   burst,
		idle:    idle,
	}
	go l.sweep(ctx)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r)
			lim := l.limiter(ip)
			if !lim.Allow() {
				logger.Warn("rate limited", slog.String("ip", ip), slog.String("path", r.URL.Path))
				wait := time.Duration(float64(time.Second) / float64(l.every))
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				render.Error(w, r, logger, e.WithDetail(e.ErrRateLimited, "Too many requests, slow down"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *ipLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func (l *ipLimiter) sweep(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			l.mu.Lock()
			for ip, c := range l.clients {
				if now.Sub(c.lastSeen) > l.idle {
					delete(l.clients, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
