package domain

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// BoardSize is the number of tiles on a memory board (5x5).
	BoardSize = 25
	// PairCount is the number of matchable symbol pairs on a board.
	PairCount = 12
)

var (
	ErrTileOutOfRange = errors.New("memory: tile out of range")
	ErrTileMatched    = errors.New("memory: tile already matched")
	ErrTileSelected   = errors.New("memory: tile already selected this turn")
)

// Tile is one cell of a memory board. A wild tile matches any other tile.
type Tile struct {
	Symbol  string
	Wild    bool
	Matched bool
}

// FlipOutcome describes what a flip did to the board.
type FlipOutcome int

const (
	// FlipFirst recorded the first tile of a pair; awaiting the second.
	FlipFirst FlipOutcome = iota
	// FlipMatch completed a pair; both tiles are now permanently revealed.
	FlipMatch
	// FlipMismatch revealed two different tiles; both flip back face-down.
	FlipMismatch
	// FlipWin completed the final pair.
	FlipWin
)

// Flip is the result of one tile selection. First and Second identify the
// tiles involved so the renderer can reveal or re-hide them.
type Flip struct {
	Outcome FlipOutcome
	First   int
	Second  int
}

// Board is one memory game's state: 12 randomly chosen symbols duplicated
// plus exactly one wild tile, shuffled over 25 cells. Transitions happen
// only through Flip.
type Board struct {
	tiles     []Tile
	remaining int
	first     int
}

// NewBoard builds a shuffled board from the symbol pool. The pool must
// offer at least PairCount distinct symbols.
func NewBoard(rng *rand.Rand, pool []string) (*Board, error) {
	if len(pool) < PairCount {
		return nil, fmt.Errorf("memory: symbol pool too small: %d < %d", len(pool), PairCount)
	}

	chosen := make([]string, len(pool))
	copy(chosen, pool)
	rng.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})
	chosen = chosen[:PairCount]

	tiles := make([]Tile, 0, BoardSize)
	for _, sym := range chosen {
		tiles = append(tiles, Tile{Symbol: sym}, Tile{Symbol: sym})
	}
	tiles = append(tiles, Tile{Symbol: "🃏", Wild: true})

	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return &Board{tiles: tiles, remaining: PairCount, first: -1}, nil
}

// Flip selects the tile at idx and advances the turn state machine.
func (b *Board) Flip(idx int) (Flip, error) {
	if idx < 0 || idx >= len(b.tiles) {
		return Flip{}, ErrTileOutOfRange
	}
	if b.tiles[idx].Matched {
		return Flip{}, ErrTileMatched
	}

	if b.first < 0 {
		b.first = idx
		return Flip{Outcome: FlipFirst, First: idx, Second: -1}, nil
	}
	if idx == b.first {
		return Flip{}, ErrTileSelected
	}

	first := b.first
	b.first = -1

	if b.matches(first, idx) {
		b.tiles[first].Matched = true
		b.tiles[idx].Matched = true
		b.remaining--
		outcome := FlipMatch
		if b.remaining == 0 {
			outcome = FlipWin
		}
		return Flip{Outcome: outcome, First: first, Second: idx}, nil
	}
	return Flip{Outcome: FlipMismatch, First: first, Second: idx}, nil
}

// matches reports whether two tiles pair up; the wild tile pairs with
// anything.
func (b *Board) matches(i, j int) bool {
	if b.tiles[i].Wild || b.tiles[j].Wild {
		return true
	}
	return b.tiles[i].Symbol == b.tiles[j].Symbol
}

// Remaining returns the number of unmatched pairs left.
func (b *Board) Remaining() int { return b.remaining }

// Selected returns the index of the face-up first tile, or -1.
func (b *Board) Selected() int { return b.first }

// Tile returns a copy of the tile at idx.
func (b *Board) Tile(idx int) Tile { return b.tiles[idx] }

// Tiles returns a copy of the full board.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}
