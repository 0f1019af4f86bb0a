package leveling

import "testing"

func TestThreshold(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{0, 0},
		{1, 100},
		{2, 300},
		{3, 600},
		{4, 1000},
		{10, 5500},
	}
	for _, tt := range tests {
		if got := Threshold(tt.level); got != tt.want {
			t.Errorf("Threshold(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{299, 1},
		{300, 2},
		{599, 2},
		{600, 3},
		{5500, 10},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForXP_RoundTripsThreshold(t *testing.T) {
	for level := 1; level <= 50; level++ {
		at := Threshold(level)
		if got := LevelForXP(at); got != level {
			t.Errorf("LevelForXP(Threshold(%d)) = %d", level, got)
		}
		if got := LevelForXP(at - 1); got != level-1 {
			t.Errorf("LevelForXP(Threshold(%d)-1) = %d, want %d", level, got, level-1)
		}
	}
}

func TestProgress(t *testing.T) {
	into, needed := Progress(150)
	if into != 50 {
		t.Errorf("expected 50 XP into level 1, got %d", into)
	}
	if needed != 200 {
		t.Errorf("expected 200 XP from level 1 to 2, got %d", needed)
	}

	into, needed = Progress(0)
	if into != 0 || needed != 100 {
		t.Errorf("expected 0/100 at zero XP, got %d/%d", into, needed)
	}
}
