package settings

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
)

func TestHandleSet_NothingToChange(t *testing.T) {
	m := &Module{}
	r := &bot.MockResponder{}

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{GuildID: "guild-1"}}
	if err := m.handleSet(i, r, nil); err != nil {
		t.Fatalf("handleSet: %v", err)
	}
	if r.LastResponse == nil || r.LastResponse.Data.Content != "Nothing to change. Pass at least one option." {
		t.Errorf("expected the nothing-to-change reply, got %+v", r.LastResponse)
	}
}

func TestHandleConfig_UnknownSubcommand(t *testing.T) {
	m := &Module{}
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "config",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "bogus", Type: discordgo.ApplicationCommandOptionSubCommand},
				},
			},
		},
	}
	if err := m.handleConfig(nil, i, &bot.MockResponder{}); err == nil {
		t.Fatal("expected an error for an unknown subcommand")
	}
}

func TestEventList(t *testing.T) {
	if got := eventList(nil); got != "none" {
		t.Errorf("empty list: got %q", got)
	}
	if got := eventList([]string{"member_join", "member_remove"}); got != "`member_join`, `member_remove`" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestChannelMention(t *testing.T) {
	if got := channelMention(""); got != "not set" {
		t.Errorf("empty ID: got %q", got)
	}
	if got := channelMention("123"); got != "<#123>" {
		t.Errorf("unexpected mention %q", got)
	}
}

func TestAuditEventChoices_MatchSelectBounds(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range auditEventChoices {
		if seen[c.Value] {
			t.Errorf("duplicate event value %q", c.Value)
		}
		seen[c.Value] = true
	}
}
