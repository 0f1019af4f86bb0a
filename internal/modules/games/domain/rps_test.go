package domain

import (
	"errors"
	"testing"
)

func TestResolve_WinTable(t *testing.T) {
	tests := []struct {
		name     string
		player   Pick
		opponent Pick
		want     Outcome
	}{
		{"rock beats scissors", PickRock, PickScissors, OutcomePlayer},
		{"paper beats rock", PickPaper, PickRock, OutcomePlayer},
		{"scissors beats paper", PickScissors, PickPaper, OutcomePlayer},
		{"scissors loses to rock", PickScissors, PickRock, OutcomeOpponent},
		{"rock loses to paper", PickRock, PickPaper, OutcomeOpponent},
		{"paper loses to scissors", PickPaper, PickScissors, OutcomeOpponent},
		{"equal picks tie", PickPaper, PickPaper, OutcomeTie},
		{"missing player pick is a timeout", PickNone, PickRock, OutcomeTimeout},
		{"missing opponent pick is a timeout", PickScissors, PickNone, OutcomeTimeout},
		{"both missing is a timeout", PickNone, PickNone, OutcomeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.player, tt.opponent); got != tt.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tt.player, tt.opponent, got, tt.want)
			}
		})
	}
}

func TestMatch_CommitBothSeats(t *testing.T) {
	m := NewMatch("p1", "p2")

	complete, err := m.Commit("p1", PickRock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if complete {
		t.Error("round should not be complete after one pick")
	}

	complete, err = m.Commit("p2", PickScissors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !complete {
		t.Error("round should be complete after both picks")
	}

	if got := m.Resolve(); got != OutcomePlayer {
		t.Errorf("expected player win, got %v", got)
	}
}

func TestMatch_RejectsRepeatPick(t *testing.T) {
	m := NewMatch("p1", "p2")

	if _, err := m.Commit("p1", PickRock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Commit("p1", PickPaper); !errors.Is(err, ErrAlreadyPicked) {
		t.Errorf("expected ErrAlreadyPicked, got %v", err)
	}

	// The original pick survives the rejected change.
	player, _ := m.Picks()
	if player != PickRock {
		t.Errorf("rejected repeat pick mutated state: %v", player)
	}
}

func TestMatch_RejectsOutsiders(t *testing.T) {
	m := NewMatch("p1", "p2")

	if _, err := m.Commit("intruder", PickRock); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("expected ErrNotParticipant, got %v", err)
	}
}

func TestMatch_SoloModeAlwaysResolves(t *testing.T) {
	// The bot seat is pre-assigned before any input is collected, so one
	// player pick always completes the round.
	for _, botPick := range []Pick{PickRock, PickPaper, PickScissors} {
		m := NewMatch("p1", "bot")
		m.CommitOpponent(botPick)

		complete, err := m.Commit("p1", PickPaper)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !complete {
			t.Fatalf("solo round with bot pick %v did not complete", botPick)
		}
		if m.Resolve() == OutcomeTimeout {
			t.Errorf("solo round resolved as timeout with bot pick %v", botPick)
		}
	}
}

func TestParsePick(t *testing.T) {
	if ParsePick("rock") != PickRock || ParsePick("paper") != PickPaper || ParsePick("scissors") != PickScissors {
		t.Error("known suffixes must parse to their picks")
	}
	if ParsePick("lizard") != PickNone {
		t.Error("unknown suffix must parse to PickNone")
	}
}
