// Package moderation provides the moderation commands: /warn, /kick,
// /ban, /timeout, and the /infractions history viewer. Every action is
// recorded as an infraction row.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/storage"
)

func init() {
	bot.Register(&Module{})
}

const (
	maxTimeout       = 28 * 24 * time.Hour
	infractionsShown = 10
)

type Module struct {
	bot.BaseModule

	store *storage.Store
}

func (m *Module) Name() string {
	return "moderation"
}

func (m *Module) Init(deps bot.ModuleDependencies) error {
	store, ok := deps.Store.(*storage.Store)
	if !ok {
		return fmt.Errorf("moderation module requires a storage.Store")
	}
	m.store = store
	return nil
}

func (m *Module) Commands() []*discordgo.ApplicationCommand {
	reason := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: "Why this action is being taken",
	}
	target := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: desc,
			Required:    true,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "warn",
			Description: "Warn a member and record it",
			Options:     []*discordgo.ApplicationCommandOption{target("Member to warn"), reason},
		},
		{
			Name:        "kick",
			Description: "Kick a member from the server",
			Options:     []*discordgo.ApplicationCommandOption{target("Member to kick"), reason},
		},
		{
			Name:        "ban",
			Description: "Ban a user from the server",
			Options: []*discordgo.ApplicationCommandOption{
				target("User to ban"),
				reason,
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "delete_days",
					Description: "Days of message history to delete (0-7)",
					MinValue:    zeroFloat(),
					MaxValue:    7,
				},
			},
		},
		{
			Name:        "timeout",
			Description: "Time a member out",
			Options: []*discordgo.ApplicationCommandOption{
				target("Member to time out"),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "minutes",
					Description: "Timeout length in minutes",
					Required:    true,
					MinValue:    oneFloat(),
				},
				reason,
			},
		},
		{
			Name:        "infractions",
			Description: "Show a user's recorded infractions",
			Options:     []*discordgo.ApplicationCommandOption{target("User to look up")},
		},
	}
}

func (m *Module) CommandHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key:         "warn",
			Permissions: discordgo.PermissionModerateMembers,
			Run:         m.handleWarn,
		},
		{
			Key:            "kick",
			Permissions:    discordgo.PermissionKickMembers,
			BotPermissions: discordgo.PermissionKickMembers,
			Run:            m.handleKick,
		},
		{
			Key:            "ban",
			Permissions:    discordgo.PermissionBanMembers,
			BotPermissions: discordgo.PermissionBanMembers,
			Run:            m.handleBan,
		},
		{
			Key:            "timeout",
			Permissions:    discordgo.PermissionModerateMembers,
			BotPermissions: discordgo.PermissionModerateMembers,
			Run:            m.handleTimeout,
		},
		{
			Key:         "infractions",
			Permissions: discordgo.PermissionModerateMembers,
			Run:         m.handleInfractions,
		},
	}
}

func (m *Module) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	target, reason, _ := commandArgs(s, i)
	if target.ID == bot.InvokingUser(i).ID {
		return rejectSelfAction(r)
	}

	id, err := m.record(i, target.ID, "warn", reason)
	if err != nil {
		return err
	}

	notifyUser(s, target.ID, fmt.Sprintf("You were warned in %s: %s", guildName(s, i.GuildID), reason))
	summary := fmt.Sprintf("⚠️ Warned %s (case #%d): %s", target.Mention(), id, reason)
	m.mirror(s, i, summary)
	return respondAction(r, summary)
}

func (m *Module) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	target, reason, _ := commandArgs(s, i)
	if target.ID == bot.InvokingUser(i).ID {
		return rejectSelfAction(r)
	}

	// The DM has to go out before the kick severs the mutual guild.
	notifyUser(s, target.ID, fmt.Sprintf("You were kicked from %s: %s", guildName(s, i.GuildID), reason))

	if err := s.GuildMemberDeleteWithReason(i.GuildID, target.ID, reason); err != nil {
		return fmt.Errorf("kick member: %w", err)
	}

	id, err := m.record(i, target.ID, "kick", reason)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("👢 Kicked %s (case #%d): %s", target.Mention(), id, reason)
	m.mirror(s, i, summary)
	return respondAction(r, summary)
}

func (m *Module) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	target, reason, opts := commandArgs(s, i)
	if target.ID == bot.InvokingUser(i).ID {
		return rejectSelfAction(r)
	}

	deleteDays := 0
	if opt, ok := opts["delete_days"]; ok {
		deleteDays = int(opt.IntValue())
	}

	notifyUser(s, target.ID, fmt.Sprintf("You were banned from %s: %s", guildName(s, i.GuildID), reason))

	if err := s.GuildBanCreateWithReason(i.GuildID, target.ID, reason, deleteDays); err != nil {
		return fmt.Errorf("ban user: %w", err)
	}

	id, err := m.record(i, target.ID, "ban", reason)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("🔨 Banned %s (case #%d): %s", target.Mention(), id, reason)
	m.mirror(s, i, summary)
	return respondAction(r, summary)
}

func (m *Module) handleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	target, reason, opts := commandArgs(s, i)
	if target.ID == bot.InvokingUser(i).ID {
		return rejectSelfAction(r)
	}

	dur := time.Duration(opts["minutes"].IntValue()) * time.Minute
	if dur > maxTimeout {
		dur = maxTimeout
	}
	until := time.Now().Add(dur)

	if err := s.GuildMemberTimeout(i.GuildID, target.ID, &until); err != nil {
		return fmt.Errorf("timeout member: %w", err)
	}

	id, err := m.record(i, target.ID, "timeout", reason)
	if err != nil {
		return err
	}

	notifyUser(s, target.ID, fmt.Sprintf("You were timed out in %s until <t:%d:f>: %s", guildName(s, i.GuildID), until.Unix(), reason))
	summary := fmt.Sprintf("🔇 Timed out %s until <t:%d:f> (case #%d): %s", target.Mention(), until.Unix(), id, reason)
	m.mirror(s, i, summary)
	return respondAction(r, summary)
}

func (m *Module) handleInfractions(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	target, _, _ := commandArgs(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := m.store.Infractions.ListByUser(ctx, i.GuildID, target.ID, infractionsShown)
	if err != nil {
		return fmt.Errorf("list infractions: %w", err)
	}

	desc := "No infractions on record."
	if len(list) > 0 {
		lines := make([]string, 0, len(list))
		for _, inf := range list {
			lines = append(lines, fmt.Sprintf("`#%d` **%s** by <@%s> <t:%d:R>: %s",
				inf.ID, inf.Kind, inf.ModeratorID, inf.CreatedAt.Unix(), inf.Reason))
		}
		desc = strings.Join(lines, "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Infractions for " + target.Username,
		Description: desc,
		Color:       0xED4245,
	}
	if age, ok := accountAge(target.ID); ok {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Account created " + age.Format("2006-01-02"),
		}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// record stores the infraction and returns its case number.
func (m *Module) record(i *discordgo.InteractionCreate, userID, kind, reason string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := m.store.Infractions.Add(ctx, storage.Infraction{
		GuildID:     i.GuildID,
		UserID:      userID,
		ModeratorID: bot.InvokingUser(i).ID,
		Kind:        kind,
		Reason:      reason,
	})
	if err != nil {
		return 0, fmt.Errorf("record infraction: %w", err)
	}
	return id, nil
}

// mirror posts the action summary to the guild's log channel when one is
// configured. Best effort; a failed mirror never fails the action.
func (m *Module) mirror(s *discordgo.Session, i *discordgo.InteractionCreate, summary string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := m.store.Settings.Get(ctx, i.GuildID)
	if err != nil {
		slog.Error("failed to load settings for moderation mirror", "guild_id", i.GuildID, "error", err)
		return
	}
	if cfg.LogChannelID == "" || cfg.LogChannelID == i.ChannelID {
		return
	}

	_, err = s.ChannelMessageSendEmbed(cfg.LogChannelID, &discordgo.MessageEmbed{
		Title:       "Moderation action",
		Description: fmt.Sprintf("%s\nModerator: <@%s>", summary, bot.InvokingUser(i).ID),
		Color:       0xED4245,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
	if err != nil {
		slog.Error("failed to mirror moderation action", "channel_id", cfg.LogChannelID, "error", err)
	}
}

// commandArgs extracts the target user, the reason (defaulted when
// omitted), and the full option map.
func commandArgs(s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.User, string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range i.ApplicationCommandData().Options {
		opts[opt.Name] = opt
	}

	var target *discordgo.User
	if opt, ok := opts["user"]; ok {
		target = opt.UserValue(s)
	}
	reason := "No reason given."
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}
	return target, reason, opts
}

// notifyUser DMs the user about the action taken. Failure is expected
// when DMs are closed and never blocks the action.
func notifyUser(s *discordgo.Session, userID, content string) {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		slog.Debug("could not open DM channel", "user_id", userID, "error", err)
		return
	}
	if _, err := s.ChannelMessageSend(ch.ID, content); err != nil {
		slog.Debug("could not DM user", "user_id", userID, "error", err)
	}
}

// accountAge derives the account creation time from the user's snowflake.
func accountAge(userID string) (time.Time, bool) {
	id, err := snowflake.Parse(userID)
	if err != nil {
		return time.Time{}, false
	}
	return id.Time(), true
}

func guildName(s *discordgo.Session, guildID string) string {
	if g, err := s.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	return "the server"
}

func respondAction(r bot.Responder, content string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func rejectSelfAction(r bot.Responder) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "You cannot moderate yourself.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func zeroFloat() *float64 { v := 0.0; return &v }
func oneFloat() *float64  { v := 1.0; return &v }
