package engine

import (
	"sync"
	"time"

	"github.com/guildline/engage-api/models"
)

type limiterKey struct {
	communityID string
	userID      string
	source      models.XPSource
}

// RateLimiter is the per-(member, source) cooldown gate in front of the xp
// ledger. One allowance per window per key; a second call inside the window
// returns false with no side effects. State is process-local and ephemeral.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[models.XPSource]time.Duration
	lastUse map[limiterKey]time.Time
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter with the given per-source windows.
// Sources without a window (boost, referral) are never gated.
func NewRateLimiter(windows map[models.XPSource]time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: windows,
		lastUse: make(map[limiterKey]time.Time),
		now:     time.Now,
	}
}

// Allow consumes the key's token when one is available. The check and the
// consume happen under one lock so two concurrent calls for the same key can
// never both pass on a single token.
func (l *RateLimiter) Allow(communityID, userID string, source models.XPSource) bool {
	window, gated := l.windows[source]
	if !gated {
		return true
	}

	key := limiterKey{communityID: communityID, userID: userID, source: source}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastUse[key]; ok && now.Sub(last) < window {
		return false
	}
	l.lastUse[key] = now
	return true
}

// Sweep drops entries whose window has long passed so the map does not grow
// with every member ever seen. Returns the number of entries removed.
func (l *RateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, last := range l.lastUse {
		window := l.windows[key.source]
		if now.Sub(last) >= window {
			delete(l.lastUse, key)
			removed++
		}
	}
	return removed
}
