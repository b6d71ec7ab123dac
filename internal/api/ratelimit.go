package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter hands out one token bucket per client IP.
type clientLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration

	mu          sync.Mutex
	clients     map[string]*rate.Limiter
	lastCleanup time.Time
}

// RateLimit allows each client IP `requests` requests per `window`, with the
// whole allowance available as a burst. A non-positive requests disables it.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	cl := &clientLimiter{
		limit:       rate.Every(window / time.Duration(requests)),
		burst:       requests,
		window:      window,
		clients:     make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cl.get(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (cl *clientLimiter) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Idle clients are forgotten once per window to bound memory.
	if time.Since(cl.lastCleanup) > cl.window {
		for k, l := range cl.clients {
			if l.Tokens() >= float64(cl.burst) {
				delete(cl.clients, k)
			}
		}
		cl.lastCleanup = time.Now()
	}

	l, ok := cl.clients[ip]
	if !ok {
		l = rate.NewLimiter(cl.limit, cl.burst)
		cl.clients[ip] = l
	}
	return l
}

// clientIP returns the request's remote IP. middleware.RealIP has already
// replaced RemoteAddr with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
