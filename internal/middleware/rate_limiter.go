package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/abhishek972986/porter-managment/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter ──────────────────────────────────────────────────────

// ipEntry tracks requests per IP within the current window.
type ipEntry struct {
	count     int
	windowEnd time.Time
}

type limiter struct {
	mu      sync.Mutex
	entries map[string]*ipEntry
	limit   int
	window  time.Duration
	message string
}

func newLimiter(limit int, window time.Duration, message string) *limiter {
	l := &limiter{entries: make(map[string]*ipEntry), limit: limit, window: window, message: message}
	register(l)
	return l
}

// allow counts one request for ip and reports whether it fits, plus the
// time the current window ends.
func (l *limiter) allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &ipEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		ok, windowEnd := l.allow(c.ClientIP(), now)
		if !ok {
			secs := int(windowEnd.Sub(now).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.Fail(apierror.New(http.StatusTooManyRequests, l.message)))
			return
		}
		c.Next()
	}
}

func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	return purged
}

// LoginRateLimiter limits login attempts to limit per minute per IP.
func LoginRateLimiter(limit int) gin.HandlerFunc {
	if limit <= 0 {
		limit = 20
	}
	return newLimiter(limit, time.Minute, "too many login attempts, try again in a minute").handler()
}

// RateLimiter is the general API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter(limit, window, "too many requests, try again shortly").handler()
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired entries so IPs that never return do not
// accumulate.

const purgeInterval = 5 * time.Minute

var (
	limitersMu sync.Mutex
	limiters   []*limiter
	purgeOnce  sync.Once
)

func register(l *limiter) {
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	purgeOnce.Do(func() { go purgeExpiredEntries() })
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		limitersMu.Lock()
		all := append([]*limiter(nil), limiters...)
		limitersMu.Unlock()

		purged := 0
		for _, l := range all {
			purged += l.purge(now)
		}
		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter entries purged")
		}
	}
}
