package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestDisableComponents_PreservesButtonAppearance(t *testing.T) {
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: "rps:rock",
				Label:    "Rock",
				Style:    discordgo.PrimaryButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "🪨"},
			},
			discordgo.Button{
				CustomID: "rps:paper",
				Label:    "Paper",
				Style:    discordgo.SecondaryButton,
			},
		}},
	}

	out := DisableComponents(rows)

	row, ok := out[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("expected an ActionsRow, got %T", out[0])
	}
	btn, ok := row.Components[0].(discordgo.Button)
	if !ok {
		t.Fatalf("expected a Button, got %T", row.Components[0])
	}
	if !btn.Disabled {
		t.Error("button was not disabled")
	}
	if btn.Label != "Rock" || btn.Style != discordgo.PrimaryButton || btn.Emoji == nil {
		t.Error("button appearance was not preserved")
	}

	// Source rows untouched.
	orig := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	if orig.Disabled {
		t.Error("DisableComponents mutated its input")
	}
}

func TestDisableComponents_DisablesSelectMenus(t *testing.T) {
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: "audit-events", Placeholder: "Pick events"},
		}},
	}

	out := DisableComponents(rows)
	row := out[0].(discordgo.ActionsRow)
	sm := row.Components[0].(discordgo.SelectMenu)
	if !sm.Disabled {
		t.Error("select menu was not disabled")
	}
	if sm.Placeholder != "Pick events" {
		t.Error("select menu appearance was not preserved")
	}
}
