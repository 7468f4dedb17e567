package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Every request on this surface fans out into metered provider calls
// (transcription, chat, speech), so the per-IP budget here is really a
// budget on upstream spend, not on server CPU.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func (b *bucket) refill(now time.Time, rps, burst float64) {
	b.tokens += now.Sub(b.lastSeen).Seconds() * rps
	if b.tokens > burst {
		b.tokens = burst
	}
	b.lastSeen = now
}

// RateLimiter applies a token-bucket limit per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rps     float64
	burst   float64
	now     func() time.Time
	stop    chan struct{}
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rps:     rps,
		burst:   float64(burst),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl.mu.Lock()
		now := rl.now()
		b, ok := rl.buckets[r.RemoteAddr]
		if !ok {
			b = &bucket{tokens: rl.burst, lastSeen: now}
			rl.buckets[r.RemoteAddr] = b
		}
		b.refill(now, rl.rps, rl.burst)

		if b.tokens < 1 {
			rl.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
			return
		}

		b.tokens--
		rl.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// Stop ends the idle-bucket janitor.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if rl.now().Sub(b.lastSeen) > 3*time.Minute {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}
