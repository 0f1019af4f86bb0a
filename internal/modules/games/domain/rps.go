package domain

import "errors"

// Pick is one rock-paper-scissors choice. PickNone represents a player who
// never committed a move before the round ended.
type Pick int

const (
	PickNone Pick = iota
	PickRock
	PickPaper
	PickScissors
)

// String returns the display name of the pick.
func (p Pick) String() string {
	switch p {
	case PickRock:
		return "Rock"
	case PickPaper:
		return "Paper"
	case PickScissors:
		return "Scissors"
	default:
		return "None"
	}
}

// ParsePick maps a component custom-id suffix to a pick.
func ParsePick(s string) Pick {
	switch s {
	case "rock":
		return PickRock
	case "paper":
		return PickPaper
	case "scissors":
		return PickScissors
	default:
		return PickNone
	}
}

// Outcome of a resolved round, from the inviting player's perspective.
type Outcome int

const (
	OutcomeTimeout Outcome = iota
	OutcomeTie
	OutcomePlayer
	OutcomeOpponent
)

// Resolve applies the fixed win table. A missing pick on either side is a
// timeout, never a loss.
func Resolve(player, opponent Pick) Outcome {
	if player == PickNone || opponent == PickNone {
		return OutcomeTimeout
	}
	if player == opponent {
		return OutcomeTie
	}
	if beats(player, opponent) {
		return OutcomePlayer
	}
	return OutcomeOpponent
}

func beats(a, b Pick) bool {
	return (a == PickRock && b == PickScissors) ||
		(a == PickPaper && b == PickRock) ||
		(a == PickScissors && b == PickPaper)
}

var (
	// ErrNotParticipant rejects a pick from a user who is in neither seat.
	ErrNotParticipant = errors.New("rps: not a participant")
	// ErrAlreadyPicked rejects a second pick from the same player.
	ErrAlreadyPicked = errors.New("rps: already picked this round")
)

// Match holds one round's state. Mutated only through Commit so the
// in-progress invariants (one pick per seat) hold across interleavings.
type Match struct {
	PlayerID   string
	OpponentID string

	playerPick   Pick
	opponentPick Pick
}

// NewMatch creates a round between the inviting player and an opponent.
// For solo play the opponent seat belongs to the bot; pre-assign its pick
// with CommitOpponent before collecting input.
func NewMatch(playerID, opponentID string) *Match {
	return &Match{PlayerID: playerID, OpponentID: opponentID}
}

// Commit records userID's pick. Complete is true once both seats have
// picked and the round can resolve.
func (m *Match) Commit(userID string, p Pick) (complete bool, err error) {
	switch userID {
	case m.PlayerID:
		if m.playerPick != PickNone {
			return false, ErrAlreadyPicked
		}
		m.playerPick = p
	case m.OpponentID:
		if m.opponentPick != PickNone {
			return false, ErrAlreadyPicked
		}
		m.opponentPick = p
	default:
		return false, ErrNotParticipant
	}
	return m.playerPick != PickNone && m.opponentPick != PickNone, nil
}

// CommitOpponent assigns the opponent seat directly (solo mode bot pick).
func (m *Match) CommitOpponent(p Pick) {
	m.opponentPick = p
}

// Picks returns both seats' picks; PickNone marks an uncommitted seat.
func (m *Match) Picks() (player, opponent Pick) {
	return m.playerPick, m.opponentPick
}

// Resolve computes the round outcome from the current picks.
func (m *Match) Resolve() Outcome {
	return Resolve(m.playerPick, m.opponentPick)
}
