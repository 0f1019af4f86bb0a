package core

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
)

func TestModule_RegistersBothCommands(t *testing.T) {
	m := &Module{}

	commands := m.Commands()
	if len(commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(commands))
	}

	handlers := m.CommandHandlers()
	if len(handlers) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(handlers))
	}
	for _, h := range handlers {
		if h.Key == "reload" && !h.DeveloperOnly {
			t.Error("reload must be developer-only")
		}
	}
}

func TestHandleReload_InvokesCallback(t *testing.T) {
	calls := 0
	m := &Module{}
	if err := m.Init(bot.ModuleDependencies{Reload: func() { calls++ }}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	r := &bot.MockResponder{}
	if err := m.handleReload(nil, &discordgo.InteractionCreate{}, r); err != nil {
		t.Fatalf("handleReload: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 reload call, got %d", calls)
	}
	if r.LastResponse == nil {
		t.Fatal("expected a confirmation response")
	}
	if r.LastResponse.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("confirmation should be ephemeral")
	}
}

func TestHandleReload_WithoutCallbackFails(t *testing.T) {
	m := &Module{}
	if err := m.handleReload(nil, &discordgo.InteractionCreate{}, &bot.MockResponder{}); err == nil {
		t.Fatal("expected an error when reload is unavailable")
	}
}
