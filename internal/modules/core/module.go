// Package core provides baseline commands: /ping and the developer-only
// /reload.
package core

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
)

func init() {
	bot.Register(&Module{})
}

type Module struct {
	bot.BaseModule

	reload func()
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Init(deps bot.ModuleDependencies) error {
	m.reload = deps.Reload
	return nil
}

func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check whether the bot is responsive",
		},
		{
			Name:        "reload",
			Description: "Rebuild the interaction handler tables",
		},
	}
}

func (m *Module) CommandHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key: "ping",
			Run: m.handlePing,
		},
		{
			Key:           "reload",
			DeveloperOnly: true,
			Run:           m.handleReload,
		},
	}
}

func (m *Module) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	latency := s.HeartbeatLatency().Round(time.Millisecond)
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Pong! Gateway latency: %s", latency),
		},
	})
}

func (m *Module) handleReload(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	if m.reload == nil {
		return fmt.Errorf("reload is not available")
	}
	m.reload()
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Handler tables rebuilt.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
