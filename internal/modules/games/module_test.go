package games

import (
	"testing"

	"github.com/solstanik/emberbot/internal/bot"
)

func TestCommandsAndHandlersAligned(t *testing.T) {
	m := &Module{}

	keys := make(map[string]bool)
	for _, h := range m.CommandHandlers() {
		keys[h.Key] = true
	}
	for _, cmd := range m.Commands() {
		if !keys[cmd.Name] {
			t.Errorf("command %q has no handler", cmd.Name)
		}
	}
	if len(keys) != len(m.Commands()) {
		t.Errorf("%d handlers for %d commands", len(keys), len(m.Commands()))
	}
}

func TestInit_BuildsHandlers(t *testing.T) {
	m := &Module{}
	if err := m.Init(bot.ModuleDependencies{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if m.rps == nil || m.memory == nil || m.trivia == nil || m.fasttype == nil {
		t.Fatal("Init must construct every game handler")
	}
}

func TestNoComponentHandlersRegistered(t *testing.T) {
	// In-game clicks are consumed by collectors; registering component
	// handlers here would race them for the same custom IDs.
	m := &Module{}
	if got := m.ComponentHandlers(); len(got) != 0 {
		t.Errorf("expected no component handlers, got %d", len(got))
	}
}
