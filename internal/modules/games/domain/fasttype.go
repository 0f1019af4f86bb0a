package domain

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// Sentences is the fixed prompt pool for the typing race.
var Sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Pack my box with five dozen liquor jugs.",
	"Sphinx of black quartz, judge my vow.",
	"How vexingly quick daft zebras jump.",
	"The five boxing wizards jump quickly.",
	"Jackdaws love my big sphinx of quartz.",
	"Bright vixens jump; dozy fowl quack.",
	"Quick zephyrs blow, vexing daft Jim.",
}

// RandomSentence picks one prompt from the pool.
func RandomSentence(rng *rand.Rand) string {
	return Sentences[rng.Intn(len(Sentences))]
}

// WPM computes words-per-minute as trimmed length over elapsed minutes
// over five, floored to two decimal places.
func WPM(typed string, elapsed time.Duration) float64 {
	trimmed := strings.TrimSpace(typed)
	minutes := elapsed.Minutes()
	if minutes <= 0 || trimmed == "" {
		return 0
	}
	v := float64(len(trimmed)) / minutes / 5
	return math.Floor(v*100) / 100
}

// Similarity returns the bigram overlap ratio between two strings as a
// whole percentage. Identical trimmed strings score 100; strings without
// a common bigram score 0.
func Similarity(a, b string) int {
	a = strings.Join(strings.Fields(a), " ")
	b = strings.Join(strings.Fields(b), " ")
	if a == b {
		return 100
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigrams := make(map[string]int)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}
	matches := 0
	for i := 0; i < len(b)-1; i++ {
		pair := b[i : i+2]
		if bigrams[pair] > 0 {
			bigrams[pair]--
			matches++
		}
	}
	return int(math.Floor(float64(2*matches) / float64(len(a)-1+len(b)-1) * 100))
}

// RaceResult scores one typing attempt.
type RaceResult struct {
	Exact      bool
	WPM        float64
	Similarity int
	Elapsed    time.Duration
}

// Race measures wall-clock time from prompt render to the first reply.
type Race struct {
	Sentence  string
	StartedAt time.Time
}

// NewRace starts a race for the given sentence.
func NewRace(sentence string, startedAt time.Time) *Race {
	return &Race{Sentence: sentence, StartedAt: startedAt}
}

// Score evaluates the attempt typed at the given instant. Exactness
// requires a perfect trimmed match; similarity is reported regardless so
// near-misses get partial credit framing.
func (r *Race) Score(typed string, at time.Time) RaceResult {
	elapsed := at.Sub(r.StartedAt)
	return RaceResult{
		Exact:      strings.TrimSpace(typed) == strings.TrimSpace(r.Sentence),
		WPM:        WPM(typed, elapsed),
		Similarity: Similarity(typed, r.Sentence),
		Elapsed:    elapsed,
	}
}
