package travelapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxRetryAfter caps how long a Retry-After header may pause requests.
const maxRetryAfter = time.Minute

// rateLimiter combines proactive token-bucket throttling with a reactive
// pause after the API answers 429 with Retry-After.
type rateLimiter struct {
	bucket *rate.Limiter

	mu         sync.Mutex
	pauseUntil time.Time
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond < 0 {
		limit = rate.Inf
	}
	return &rateLimiter{bucket: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a request may be sent.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	until := r.pauseUntil
	r.mu.Unlock()

	if wait := time.Until(until); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return r.bucket.Wait(ctx)
}

// Observe records a Retry-After pause from a 429 response.
func (r *rateLimiter) Observe(resp *http.Response) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return
	}
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds <= 0 {
		return
	}
	pause := time.Duration(seconds) * time.Second
	if pause > maxRetryAfter {
		pause = maxRetryAfter
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(pause); until.After(r.pauseUntil) {
		r.pauseUntil = until
	}
}

// PausedUntil returns the end of the current reactive pause.
func (r *rateLimiter) PausedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pauseUntil
}
