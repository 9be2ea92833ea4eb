// Package ratelimit limits requests per client and endpoint with token buckets from golang.org/x/time/rate.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry // clientID:method:path -> limiter
	config  *Config
	now     func() time.Time

	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = NewConfig(true, 30, 20, "")
	}

	l := &Limiter{
		entries: make(map[string]*entry),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}

	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	ec := l.config.EndpointFor(method, endpoint)
	if ec == nil || ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	lim := l.limiterFor(clientID+":"+method+":"+endpoint, ec, now)
	burst := lim.Burst()

	info := Info{Limit: ec.Limit}
	res := lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); !res.OK() || delay > 0 {
		res.CancelAt(now)
		info.RetryAfter = delay
	} else {
		info.Allowed = true
	}

	tokens := lim.TokensAt(now)
	info.Remaining = max(0, int(math.Floor(tokens)))
	if missing := float64(burst) - tokens; missing > 0 {
		info.ResetTime = now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))
	} else {
		info.ResetTime = now
	}

	return info.Allowed, info
}

func (l *Limiter) limiterFor(key string, ec *EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	burst := ec.Burst
	if burst <= 0 {
		burst = ec.Limit
	}
	every := ec.Window / time.Duration(ec.Limit)
	e := &entry{limiter: rate.NewLimiter(rate.Every(every), burst), lastSeen: now}
	l.entries[key] = e
	return e.limiter
}

// cleanup removes idle limiters until Stop is called.
func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeIdle()
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) removeIdle() {
	idle := l.config.IdleTimeout
	if idle <= 0 {
		idle = time.Hour
	}
	cutoff := l.now().Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// Size returns the number of tracked client limiters.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
