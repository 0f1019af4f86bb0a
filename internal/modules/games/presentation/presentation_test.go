package presentation

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/modules/games/domain"
)

func TestRPSEmbed_Outcomes(t *testing.T) {
	user := &discordgo.User{ID: "p1", Username: "alice"}
	opponent := &discordgo.User{ID: "p2", Username: "bob"}

	t.Run("starting prompt", func(t *testing.T) {
		e := rpsEmbed(user, opponent, nil)
		if !strings.Contains(e.Description, "alice vs bob") {
			t.Errorf("unexpected prompt %q", e.Description)
		}
	})

	t.Run("player win", func(t *testing.T) {
		m := domain.NewMatch("p1", "p2")
		if _, err := m.Commit("p1", domain.PickRock); err != nil {
			t.Fatal(err)
		}
		if _, err := m.Commit("p2", domain.PickScissors); err != nil {
			t.Fatal(err)
		}
		e := rpsEmbed(user, opponent, m)
		if !strings.Contains(e.Description, "alice wins") {
			t.Errorf("unexpected outcome %q", e.Description)
		}
		if e.Color != colorGreen {
			t.Errorf("player win should be green, got %#x", e.Color)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		m := domain.NewMatch("p1", "p2")
		e := rpsEmbed(user, opponent, m)
		if !strings.Contains(e.Description, "timed out") {
			t.Errorf("unexpected outcome %q", e.Description)
		}
	})
}

func TestRPSButtons_CustomIDsParse(t *testing.T) {
	row := rpsButtons(false)[0].(discordgo.ActionsRow)
	for _, comp := range row.Components {
		b := comp.(discordgo.Button)
		pick := domain.ParsePick(strings.TrimPrefix(b.CustomID, "rps:"))
		if pick == domain.PickNone {
			t.Errorf("button ID %q does not parse to a pick", b.CustomID)
		}
	}
}

func TestMemoryGrid_Shape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	board, err := domain.NewBoard(rng, memoryPool)
	if err != nil {
		t.Fatal(err)
	}

	rows := memoryGrid(board, false)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for _, row := range rows {
		ar := row.(discordgo.ActionsRow)
		if len(ar.Components) != 5 {
			t.Fatalf("expected 5 buttons per row, got %d", len(ar.Components))
		}
		for _, comp := range ar.Components {
			b := comp.(discordgo.Button)
			if b.Disabled {
				t.Errorf("fresh board button %q should be enabled", b.CustomID)
			}
			if b.Emoji.Name != "❔" {
				t.Errorf("fresh board tile %q should be face down", b.CustomID)
			}
		}
	}
}

func TestMemoryGrid_AllDisabled(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	board, err := domain.NewBoard(rng, memoryPool)
	if err != nil {
		t.Fatal(err)
	}

	for _, row := range memoryGrid(board, true) {
		for _, comp := range row.(discordgo.ActionsRow).Components {
			if !comp.(discordgo.Button).Disabled {
				t.Fatal("every button must be disabled after the game ends")
			}
		}
	}
}

func TestMemoryGridRevealing_ShowsMismatchedPair(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	board, err := domain.NewBoard(rng, memoryPool)
	if err != nil {
		t.Fatal(err)
	}

	rows := memoryGridRevealing(board, 0, 1)
	first := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	second := rows[0].(discordgo.ActionsRow).Components[1].(discordgo.Button)
	if first.Emoji.Name == "❔" || second.Emoji.Name == "❔" {
		t.Error("revealed tiles must show their symbols")
	}
	third := rows[0].(discordgo.ActionsRow).Components[2].(discordgo.Button)
	if third.Emoji.Name != "❔" {
		t.Error("unrevealed tiles must stay face down")
	}
}

func TestTriviaRow_FinalStyles(t *testing.T) {
	q := domain.Question{
		Prompt:       "?",
		Answers:      []string{"a", "b", "c", "d"},
		CorrectIndex: 2,
	}

	row := triviaRow(q, 0, true).(discordgo.ActionsRow)
	for idx, comp := range row.Components {
		b := comp.(discordgo.Button)
		if !b.Disabled {
			t.Errorf("button %d must be disabled after the round", idx)
		}
		switch idx {
		case 2:
			if b.Style != discordgo.SuccessButton {
				t.Errorf("correct answer should be green, got %v", b.Style)
			}
		case 0:
			if b.Style != discordgo.DangerButton {
				t.Errorf("wrong pick should be red, got %v", b.Style)
			}
		default:
			if b.Style != discordgo.SecondaryButton {
				t.Errorf("untouched answer %d should stay grey, got %v", idx, b.Style)
			}
		}
	}
}

func TestTriviaRow_InProgressIsNeutral(t *testing.T) {
	q := domain.Question{Answers: []string{"True", "False"}}
	row := triviaRow(q, -1, false).(discordgo.ActionsRow)
	for _, comp := range row.Components {
		b := comp.(discordgo.Button)
		if b.Disabled {
			t.Error("buttons must stay enabled while the round runs")
		}
		if b.Style != discordgo.SecondaryButton {
			t.Errorf("in-progress style should be grey, got %v", b.Style)
		}
	}
}
