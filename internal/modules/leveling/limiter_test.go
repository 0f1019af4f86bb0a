package leveling

import (
	"testing"
	"time"
)

func TestAwardLimiter_OnePerWindow(t *testing.T) {
	l := newAwardLimiter(time.Minute)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	if !l.Allow("g1", "u1") {
		t.Fatal("first award must be allowed")
	}
	if l.Allow("g1", "u1") {
		t.Fatal("second award inside the window must be blocked")
	}

	now = now.Add(59 * time.Second)
	if l.Allow("g1", "u1") {
		t.Fatal("award one second before the window closes must be blocked")
	}

	now = now.Add(time.Second)
	if !l.Allow("g1", "u1") {
		t.Fatal("award after the window must be allowed")
	}
}

func TestAwardLimiter_UsersAndGuildsIndependent(t *testing.T) {
	l := newAwardLimiter(time.Minute)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	if !l.Allow("g1", "u1") {
		t.Fatal("first award must be allowed")
	}
	if !l.Allow("g1", "u2") {
		t.Fatal("another user must not share the window")
	}
	if !l.Allow("g2", "u1") {
		t.Fatal("the same user in another guild must not share the window")
	}
}
