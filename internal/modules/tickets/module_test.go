package tickets

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
)

func modalSubmission(customID, value string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionModalSubmit,
			Data: discordgo.ModalSubmitInteractionData{
				CustomID: "ticket-modal",
				Components: []discordgo.MessageComponent{
					&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
						&discordgo.TextInput{CustomID: customID, Value: value},
					}},
				},
			},
			Member: &discordgo.Member{User: &discordgo.User{ID: "user-1"}},
		},
	}
}

func TestModalInput(t *testing.T) {
	i := modalSubmission("subject", "cannot access the archive")
	if got := modalInput(i, "subject"); got != "cannot access the archive" {
		t.Errorf("unexpected value %q", got)
	}
	if got := modalInput(i, "missing"); got != "" {
		t.Errorf("expected empty value for unknown input, got %q", got)
	}
}

func TestHandlePanel_PostsOpenButton(t *testing.T) {
	m := &Module{}
	r := &bot.MockResponder{}

	if err := m.handlePanel(nil, &discordgo.InteractionCreate{}, r); err != nil {
		t.Fatalf("handlePanel: %v", err)
	}
	if r.LastResponse == nil {
		t.Fatal("expected a panel response")
	}

	rows := r.LastResponse.Data.Components
	if len(rows) != 1 {
		t.Fatalf("expected one component row, got %d", len(rows))
	}
	button := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	if button.CustomID != "ticket:open" {
		t.Errorf("unexpected button ID %q", button.CustomID)
	}
}

func TestComponentHandlers_CloseIsPrefixMatched(t *testing.T) {
	m := &Module{}
	for _, h := range m.ComponentHandlers() {
		switch h.Key {
		case "ticket:open":
			if h.KeyIsPrefix {
				t.Error("ticket:open must be an exact match")
			}
		case "ticket:close:":
			if !h.KeyIsPrefix {
				t.Error("ticket:close: must be prefix matched, the ticket ID follows it")
			}
		}
	}
}
