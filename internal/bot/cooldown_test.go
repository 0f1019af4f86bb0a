package bot

import (
	"testing"
	"time"
)

// fakeClock drives a Ledger deterministically: time only moves when the
// test advances it, and scheduled removals run when due.
type fakeClock struct {
	now    time.Time
	timers []fakeTimer
}

type fakeTimer struct {
	at time.Time
	f  func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) install(l *Ledger) {
	l.now = func() time.Time { return c.now }
	l.schedule = func(d time.Duration, f func()) {
		c.timers = append(c.timers, fakeTimer{at: c.now.Add(d), f: f})
	}
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
	remaining := c.timers[:0]
	for _, tm := range c.timers {
		if !tm.at.After(c.now) {
			tm.f()
		} else {
			remaining = append(remaining, tm)
		}
	}
	c.timers = remaining
}

func TestLedger_SecondUseWithinWindowRejected(t *testing.T) {
	clock := newFakeClock()
	l := NewLedger()
	clock.install(l)

	l.Arm("rps", "user-1", 3*time.Second)

	resume, cooling := l.Check("rps", "user-1", 3*time.Second)
	if !cooling {
		t.Fatal("expected second use to be on cooldown")
	}
	if resume.Before(clock.now) {
		t.Errorf("resume time %v is before now %v", resume, clock.now)
	}
}

func TestLedger_UseAfterWindowSucceeds(t *testing.T) {
	clock := newFakeClock()
	l := NewLedger()
	clock.install(l)

	l.Arm("rps", "user-1", 3*time.Second)
	clock.advance(3100 * time.Millisecond)

	if _, cooling := l.Check("rps", "user-1", 3*time.Second); cooling {
		t.Error("expected cooldown to have expired")
	}
}

func TestLedger_ExpiredButUnreapedEntryStillAllows(t *testing.T) {
	clock := newFakeClock()
	l := NewLedger()
	clock.install(l)

	l.Arm("rps", "user-1", 3*time.Second)

	// Move past the window without running the scheduled removal: the
	// stale entry must not count as cooling.
	clock.now = clock.now.Add(5 * time.Second)

	if _, cooling := l.Check("rps", "user-1", 3*time.Second); cooling {
		t.Error("stale entry counted as cooling; timestamps must be compared")
	}
}

func TestLedger_RearmSurvivesOldTimer(t *testing.T) {
	clock := newFakeClock()
	l := NewLedger()
	clock.install(l)

	l.Arm("rps", "user-1", 3*time.Second)

	// Re-arm before the first timer fires.
	clock.advance(2 * time.Second)
	l.Arm("rps", "user-1", 3*time.Second)

	// First timer fires now. It must not evict the newer entry.
	clock.advance(1100 * time.Millisecond)

	if _, cooling := l.Check("rps", "user-1", 3*time.Second); !cooling {
		t.Error("old removal timer evicted the re-armed entry")
	}

	// Second timer fires; now the entry really goes away.
	clock.advance(2 * time.Second)
	if _, cooling := l.Check("rps", "user-1", 3*time.Second); cooling {
		t.Error("expected entry to be removed after its own window")
	}
}

func TestLedger_KeysAndUsersAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := NewLedger()
	clock.install(l)

	l.Arm("rps", "user-1", 3*time.Second)

	if _, cooling := l.Check("rps", "user-2", 3*time.Second); cooling {
		t.Error("different user should not share a cooldown")
	}
	if _, cooling := l.Check("trivia", "user-1", 3*time.Second); cooling {
		t.Error("different key should not share a cooldown")
	}
}
