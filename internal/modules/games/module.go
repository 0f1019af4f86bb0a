// Package games provides turn-based mini-games played through message
// components: rock-paper-scissors, memory, trivia, and a typing race.
package games

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/modules/games/infrastructure"
	"github.com/solstanik/emberbot/internal/modules/games/presentation"
)

func init() {
	bot.Register(&Module{})
}

// Module wires the game handlers into the bot. Component clicks inside a
// running game are consumed by per-game collectors, so the module
// registers no component handlers of its own.
type Module struct {
	bot.BaseModule

	rps      *presentation.RPSHandler
	memory   *presentation.MemoryHandler
	trivia   *presentation.TriviaHandler
	fasttype *presentation.FastTypeHandler
}

func (m *Module) Name() string {
	return "games"
}

func (m *Module) Init(deps bot.ModuleDependencies) error {
	m.rps = presentation.NewRPSHandler()
	m.memory = presentation.NewMemoryHandler()
	m.trivia = presentation.NewTriviaHandler(infrastructure.NewOpenTDBClient())
	m.fasttype = presentation.NewFastTypeHandler()
	return nil
}

func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "rps",
			Description: "Play rock-paper-scissors against the bot or another member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "opponent",
					Description: "Member to challenge; leave empty to play against the bot",
				},
			},
		},
		{
			Name:        "memory",
			Description: "Play a 5x5 tile matching game",
		},
		{
			Name:        "trivia",
			Description: "Answer a trivia question",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "difficulty",
					Description: "Question difficulty",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Easy", Value: "easy"},
						{Name: "Medium", Value: "medium"},
						{Name: "Hard", Value: "hard"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Question type",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Multiple choice", Value: "multiple"},
						{Name: "True / False", Value: "boolean"},
					},
				},
			},
		},
		{
			Name:        "fasttype",
			Description: "Race to type a sentence as fast as you can",
		},
	}
}

func (m *Module) CommandHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key:      "rps",
			Cooldown: 10 * time.Second,
			Run: func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
				return m.rps.Handle(s, i, r)
			},
		},
		{
			Key:      "memory",
			Cooldown: 10 * time.Second,
			Run: func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
				return m.memory.Handle(s, i, r)
			},
		},
		{
			Key:      "trivia",
			Cooldown: 10 * time.Second,
			Run: func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
				return m.trivia.Handle(s, i, r)
			},
		},
		{
			Key:      "fasttype",
			Cooldown: 30 * time.Second,
			Run: func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
				return m.fasttype.Handle(s, i, r)
			},
		},
	}
}
