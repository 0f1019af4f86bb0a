package leveling

import (
	"sync"
	"time"
)

// awardLimiter throttles XP awards to one per user per window, so rapid
// message bursts do not farm XP.
type awardLimiter struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

func newAwardLimiter(window time.Duration) *awardLimiter {
	return &awardLimiter{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether the user may be awarded XP now, and if so starts
// a new window.
func (l *awardLimiter) Allow(guildID, userID string) bool {
	key := guildID + ":" + userID
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.last[key]; ok && now.Sub(last) < l.window {
		return false
	}
	l.last[key] = now
	return true
}
