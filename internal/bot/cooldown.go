package bot

import (
	"sync"
	"time"
)

type cooldownEntry struct {
	lastUsed time.Time
	epoch    uint64
}

// Ledger tracks, per handler key and user, when the handler was last used.
// Entries are removed by a one-shot timer scheduled at arm time. Each entry
// carries an epoch token; the timer only deletes the entry if its captured
// epoch still matches, so re-arming a key before the old timer fires cannot
// evict the newer entry.
type Ledger struct {
	mu      sync.Mutex
	epoch   uint64
	entries map[string]map[string]cooldownEntry

	// now and schedule are swappable for tests.
	now      func() time.Time
	schedule func(d time.Duration, f func())
}

// NewLedger creates an empty cooldown ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[string]map[string]cooldownEntry),
		now:     time.Now,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Check reports whether the (key, user) pair is still cooling down. When it
// is, the returned time is when the handler becomes usable again. Presence
// of an entry alone is not enough: a just-expired entry may still exist
// until its timer fires, so the timestamp is always compared.
func (l *Ledger) Check(key, userID string, amount time.Duration) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users, ok := l.entries[key]
	if !ok {
		return time.Time{}, false
	}
	e, ok := users[userID]
	if !ok {
		return time.Time{}, false
	}
	resume := e.lastUsed.Add(amount)
	if l.now().Before(resume) {
		return resume, true
	}
	return time.Time{}, false
}

// Arm records a use of key by userID and schedules removal of the entry
// after amount.
func (l *Ledger) Arm(key, userID string, amount time.Duration) {
	l.mu.Lock()
	l.epoch++
	epoch := l.epoch
	users, ok := l.entries[key]
	if !ok {
		users = make(map[string]cooldownEntry)
		l.entries[key] = users
	}
	users[userID] = cooldownEntry{lastUsed: l.now(), epoch: epoch}
	schedule := l.schedule
	l.mu.Unlock()

	schedule(amount, func() {
		l.expire(key, userID, epoch)
	})
}

func (l *Ledger) expire(key, userID string, epoch uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users, ok := l.entries[key]
	if !ok {
		return
	}
	if e, ok := users[userID]; ok && e.epoch == epoch {
		delete(users, userID)
		if len(users) == 0 {
			delete(l.entries, key)
		}
	}
}
