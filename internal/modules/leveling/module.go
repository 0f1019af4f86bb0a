// Package leveling awards XP for guild messages and provides the /rank
// and /leaderboard commands.
package leveling

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/storage"
)

func init() {
	bot.Register(&Module{})
}

const (
	awardWindow     = time.Minute
	xpJitter        = 11
	leaderboardSize = 10
)

type Module struct {
	bot.BaseModule

	store   *storage.Store
	limiter *awardLimiter
}

func (m *Module) Name() string {
	return "leveling"
}

func (m *Module) Init(deps bot.ModuleDependencies) error {
	store, ok := deps.Store.(*storage.Store)
	if !ok {
		return fmt.Errorf("leveling module requires a storage.Store")
	}
	m.store = store
	m.limiter = newAwardLimiter(awardWindow)
	return nil
}

func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "rank",
			Description: "Show a member's level and XP",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to look up; defaults to you",
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the server's top members by XP",
		},
	}
}

func (m *Module) CommandHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key: "rank",
			Run: m.handleRank,
		},
		{
			Key:      "leaderboard",
			Cooldown: 10 * time.Second,
			Run:      m.handleLeaderboard,
		},
	}
}

func (m *Module) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{m.onMessage}
}

// onMessage awards XP for guild messages, at most once per user per
// window, and announces level-ups in the channel.
func (m *Module) onMessage(s *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.GuildID == "" || msg.Author == nil || msg.Author.Bot {
		return
	}
	if !m.limiter.Allow(msg.GuildID, msg.Author.ID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := m.store.Settings.Get(ctx, msg.GuildID)
	if err != nil {
		slog.Error("failed to load settings for xp award", "guild_id", msg.GuildID, "error", err)
		return
	}
	if !cfg.LevelingEnabled {
		return
	}

	before, err := m.store.Levels.Get(ctx, msg.GuildID, msg.Author.ID)
	if err != nil {
		slog.Error("failed to load level row", "guild_id", msg.GuildID, "user_id", msg.Author.ID, "error", err)
		return
	}

	award := int64(cfg.XPRate + rand.Intn(xpJitter))
	newLevel := LevelForXP(before.XP + award)

	after, err := m.store.Levels.AddXP(ctx, msg.GuildID, msg.Author.ID, award, newLevel)
	if err != nil {
		slog.Error("failed to award xp", "guild_id", msg.GuildID, "user_id", msg.Author.ID, "error", err)
		return
	}

	if after.Level > before.Level {
		_, err := s.ChannelMessageSend(msg.ChannelID,
			fmt.Sprintf("🎉 %s reached level **%d**!", msg.Author.Mention(), after.Level))
		if err != nil {
			slog.Debug("failed to announce level-up", "channel_id", msg.ChannelID, "error", err)
		}
	}
}

func (m *Module) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	target := bot.InvokingUser(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row, err := m.store.Levels.Get(ctx, i.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("load level row: %w", err)
	}
	rank, err := m.store.Levels.Rank(ctx, i.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("compute rank: %w", err)
	}

	into, needed := Progress(row.XP)
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title: "Rank for " + target.Username,
				Color: 0x5865F2,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Rank", Value: fmt.Sprintf("#%d", rank), Inline: true},
					{Name: "Level", Value: fmt.Sprint(row.Level), Inline: true},
					{Name: "XP", Value: fmt.Sprintf("%d (%d/%d into next level)", row.XP, into, needed), Inline: true},
					{Name: "Messages", Value: fmt.Sprint(row.Messages), Inline: true},
				},
			}},
		},
	})
}

func (m *Module) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	top, err := m.store.Levels.Top(ctx, i.GuildID, leaderboardSize)
	if err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}

	desc := "Nobody has earned XP yet."
	if len(top) > 0 {
		lines := make([]string, 0, len(top))
		for idx, row := range top {
			lines = append(lines, fmt.Sprintf("**%d.** <@%s> — level %d, %d XP", idx+1, row.UserID, row.Level, row.XP))
		}
		desc = strings.Join(lines, "\n")
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Leaderboard",
				Description: desc,
				Color:       0x5865F2,
			}},
		},
	})
}
