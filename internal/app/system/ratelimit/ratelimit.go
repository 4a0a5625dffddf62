// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key in a fixed window. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    int
	duration time.Duration
}

type bucket struct {
	count   int
	resetAt time.Time
}

// New creates a limiter allowing limit requests per duration for each key.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		buckets:  make(map[string]*bucket),
		limit:    limit,
		duration: duration,
	}
	go l.sweep()
	return l
}

// Allow reports whether a request for key is within the limit and records it.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(l.duration)}
		return true
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// Reset clears the count for key, e.g. after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// sweep drops expired buckets so the map does not grow unbounded.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.duration * 2)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client IP from a request, preferring proxy headers
// over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// CredentialLimiter protects login and password reset endpoints. It tracks
// limits per IP and per account email so neither a single host nor a single
// targeted account can be hammered.
type CredentialLimiter struct {
	ipLimiter    *Limiter
	emailLimiter *Limiter
}

// NewCredentialLimiter creates a limiter with the given per-IP and per-email
// budgets.
func NewCredentialLimiter(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *CredentialLimiter {
	return &CredentialLimiter{
		ipLimiter:    New(ipLimit, ipWindow),
		emailLimiter: New(emailLimit, emailWindow),
	}
}

// DefaultCredentialLimiter allows 10 attempts per IP per minute and 5
// attempts per email per 5 minutes.
func DefaultCredentialLimiter() *CredentialLimiter {
	return NewCredentialLimiter(10, time.Minute, 5, 5*time.Minute)
}

// Check reports whether an attempt from this request for the given email is
// allowed. When blocked it returns a message suitable for the client.
func (cl *CredentialLimiter) Check(r *http.Request, email string) (bool, string) {
	if !cl.ipLimiter.Allow(ClientIP(r)) {
		return false, "Too many attempts. Please wait a minute before trying again."
	}
	if email != "" {
		if !cl.emailLimiter.Allow(emailKey(email)) {
			return false, "Too many attempts for this account. Please wait a few minutes."
		}
	}
	return true, ""
}

// ResetEmail clears the per-email count after a successful attempt.
func (cl *CredentialLimiter) ResetEmail(email string) {
	if email != "" {
		cl.emailLimiter.Reset(emailKey(email))
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
