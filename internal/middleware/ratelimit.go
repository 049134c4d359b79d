package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLimiter is a sliding-window counter. Pruning happens inline
// on Allow; stale keys are swept once the map grows past sweepAfter.
type RequestLimiter struct {
	mu         sync.Mutex
	hits       map[string][]time.Time
	limit      int
	window     time.Duration
	sweepAfter int
	now        func() time.Time
}

func NewRequestLimiter(limit int, window time.Duration) *RequestLimiter {
	return &RequestLimiter{
		hits:       make(map[string][]time.Time),
		limit:      limit,
		window:     window,
		sweepAfter: 4096,
		now:        time.Now,
	}
}

func (l *RequestLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)

	recent := pruneBefore(l.hits[key], cutoff)
	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)

	if len(l.hits) > l.sweepAfter {
		l.sweep(cutoff)
	}
	return true
}

func (l *RequestLimiter) sweep(cutoff time.Time) {
	for k, times := range l.hits {
		recent := pruneBefore(times, cutoff)
		if len(recent) == 0 {
			delete(l.hits, k)
		} else {
			l.hits[k] = recent
		}
	}
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Throttle limits requests per client IP across the whole API.
func Throttle(l *RequestLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			abortRateLimited(c, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

// ThrottleOTP limits OTP sends per target phone so one number cannot
// be flooded with codes from many addresses. Falls back to the client
// IP when the body carries no phone.
func ThrottleOTP(l *RequestLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "otp:" + peekPhone(c)
		if key == "otp:" {
			key = "otp-ip:" + c.ClientIP()
		}
		if !l.Allow(key) {
			abortRateLimited(c, "too many codes requested, try again later")
			return
		}
		c.Next()
	}
}

// peekPhone reads the phone field out of the JSON body and restores
// the body for the handler's own binding.
func peekPhone(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	var body struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Phone
}

func abortRateLimited(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   gin.H{"code": "RATE_LIMITED", "message": msg},
	})
}
