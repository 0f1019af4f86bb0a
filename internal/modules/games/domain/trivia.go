package domain

import (
	"errors"
	"math/rand"
)

var (
	ErrAlreadyAnswered  = errors.New("trivia: round already answered")
	ErrAnswerOutOfRange = errors.New("trivia: answer out of range")
)

// Question is a single quiz question with its answers in presentation
// order. The order is randomized exactly once at construction and stays
// stable for the round.
type Question struct {
	Prompt       string
	Category     string
	Difficulty   string
	Answers      []string
	CorrectIndex int
}

// NewQuestion lays out the answer set. Boolean questions keep the fixed
// True/False order; multiple-choice answers are shuffled once.
func NewQuestion(prompt, correct string, incorrect []string, rng *rand.Rand) Question {
	q := Question{Prompt: prompt}

	if len(incorrect) == 1 {
		// true/false mode: exactly two buttons, canonical order
		q.Answers = []string{"True", "False"}
		if correct == "True" {
			q.CorrectIndex = 0
		} else {
			q.CorrectIndex = 1
		}
		return q
	}

	q.Answers = make([]string, 0, len(incorrect)+1)
	q.Answers = append(q.Answers, correct)
	q.Answers = append(q.Answers, incorrect...)
	perm := rng.Perm(len(q.Answers))
	shuffled := make([]string, len(q.Answers))
	for from, to := range perm {
		shuffled[to] = q.Answers[from]
		if from == 0 {
			q.CorrectIndex = to
		}
	}
	q.Answers = shuffled
	return q
}

// Round tracks whether the question has been answered. The first answer
// locks the round; later attempts are rejected.
type Round struct {
	Question
	answered bool
	picked   int
}

// NewRound starts an unanswered round.
func NewRound(q Question) *Round {
	return &Round{Question: q, picked: -1}
}

// Answer locks in the answer at idx and reports whether it is correct.
func (r *Round) Answer(idx int) (bool, error) {
	if r.answered {
		return false, ErrAlreadyAnswered
	}
	if idx < 0 || idx >= len(r.Answers) {
		return false, ErrAnswerOutOfRange
	}
	r.answered = true
	r.picked = idx
	return idx == r.CorrectIndex, nil
}

// Answered reports whether a pick was locked in.
func (r *Round) Answered() bool { return r.answered }

// Picked returns the locked-in answer index, or -1 when the round timed
// out with no selection.
func (r *Round) Picked() int { return r.picked }
