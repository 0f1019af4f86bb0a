package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewQuestion_BooleanKeepsFixedOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewQuestion("Go has classes.", "False", []string{"True"}, rng)

	if len(q.Answers) != 2 {
		t.Fatalf("boolean mode must have exactly 2 answers, got %d", len(q.Answers))
	}
	if q.Answers[0] != "True" || q.Answers[1] != "False" {
		t.Errorf("boolean answers must stay in True/False order, got %v", q.Answers)
	}
	if q.CorrectIndex != 1 {
		t.Errorf("expected correct index 1, got %d", q.CorrectIndex)
	}
}

func TestNewQuestion_MultipleShufflesOnceAndTracksCorrect(t *testing.T) {
	correct := "blue"
	incorrect := []string{"red", "green", "yellow"}

	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		q := NewQuestion("Favorite color?", correct, incorrect, rng)

		if len(q.Answers) != 4 {
			t.Fatalf("seed %d: expected 4 answers, got %d", seed, len(q.Answers))
		}
		if q.Answers[q.CorrectIndex] != correct {
			t.Errorf("seed %d: CorrectIndex %d points at %q", seed, q.CorrectIndex, q.Answers[q.CorrectIndex])
		}

		seen := make(map[string]bool)
		for _, a := range q.Answers {
			seen[a] = true
		}
		for _, a := range append([]string{correct}, incorrect...) {
			if !seen[a] {
				t.Errorf("seed %d: answer %q missing after shuffle", seed, a)
			}
		}
	}
}

func TestRound_FirstAnswerLocks(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	r := NewRound(NewQuestion("Q", "a", []string{"b", "c", "d"}, rng))

	correct, err := r.Answer(r.CorrectIndex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !correct {
		t.Error("picking the correct index must report correct")
	}
	if !r.Answered() || r.Picked() != r.CorrectIndex {
		t.Error("round must record the locked-in pick")
	}

	if _, err := r.Answer(0); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("expected ErrAlreadyAnswered, got %v", err)
	}
}

func TestRound_TimeoutLeavesNoSelection(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r := NewRound(NewQuestion("Q", "a", []string{"b"}, rng))

	if r.Answered() {
		t.Error("fresh round must not be answered")
	}
	if r.Picked() != -1 {
		t.Errorf("unanswered round must report -1, got %d", r.Picked())
	}
}

func TestRound_OutOfRangeAnswer(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	r := NewRound(NewQuestion("Q", "a", []string{"b", "c", "d"}, rng))

	if _, err := r.Answer(9); !errors.Is(err, ErrAnswerOutOfRange) {
		t.Errorf("expected ErrAnswerOutOfRange, got %v", err)
	}
	if r.Answered() {
		t.Error("rejected answer must not lock the round")
	}
}
