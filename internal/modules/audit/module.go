// Package audit mirrors selected gateway events to the guild's log
// channel: deleted and edited messages, joins, and leaves. Which events
// are mirrored is configured per guild through /config audit.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/storage"
)

func init() {
	bot.Register(&Module{})
}

// Event keys as stored in guild settings.
const (
	eventMessageDelete = "message_delete"
	eventMessageUpdate = "message_update"
	eventMemberJoin    = "member_join"
	eventMemberRemove  = "member_remove"
)

type Module struct {
	bot.BaseModule

	store *storage.Store
}

func (m *Module) Name() string {
	return "audit"
}

func (m *Module) Init(deps bot.ModuleDependencies) error {
	store, ok := deps.Store.(*storage.Store)
	if !ok {
		return fmt.Errorf("audit module requires a storage.Store")
	}
	m.store = store
	return nil
}

func (m *Module) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.onMessageDelete,
		m.onMessageUpdate,
		m.onMemberAdd,
		m.onMemberRemove,
	}
}

// logChannel returns the guild's log channel if the event is enabled, or
// empty when the event should not be mirrored.
func (m *Module) logChannel(guildID, event string) string {
	if guildID == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := m.store.Settings.Get(ctx, guildID)
	if err != nil {
		slog.Error("failed to load settings for audit", "guild_id", guildID, "error", err)
		return ""
	}
	if cfg.LogChannelID == "" {
		return ""
	}
	for _, e := range cfg.AuditEvents {
		if e == event {
			return cfg.LogChannelID
		}
	}
	return ""
}

func (m *Module) send(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	embed.Timestamp = time.Now().Format(time.RFC3339)
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		slog.Error("failed to send audit message", "channel_id", channelID, "error", err)
	}
}

func (m *Module) onMessageDelete(s *discordgo.Session, e *discordgo.MessageDelete) {
	channelID := m.logChannel(e.GuildID, eventMessageDelete)
	if channelID == "" || channelID == e.ChannelID {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Message deleted",
		Description: fmt.Sprintf("Message `%s` deleted in <#%s>.", e.ID, e.ChannelID),
		Color:       0xED4245,
	}
	// The cached copy is only available while the message is in state.
	if e.BeforeDelete != nil {
		if e.BeforeDelete.Author != nil {
			embed.Description = fmt.Sprintf("Message by %s deleted in <#%s>.", e.BeforeDelete.Author.Mention(), e.ChannelID)
		}
		if e.BeforeDelete.Content != "" {
			embed.Fields = []*discordgo.MessageEmbedField{
				{Name: "Content", Value: truncate(e.BeforeDelete.Content, 1024)},
			}
		}
	}
	m.send(s, channelID, embed)
}

func (m *Module) onMessageUpdate(s *discordgo.Session, e *discordgo.MessageUpdate) {
	if e.Author == nil || e.Author.Bot {
		return
	}
	channelID := m.logChannel(e.GuildID, eventMessageUpdate)
	if channelID == "" || channelID == e.ChannelID {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Message edited",
		Description: fmt.Sprintf("Message by %s edited in <#%s>. [Jump](https://discord.com/channels/%s/%s/%s)", e.Author.Mention(), e.ChannelID, e.GuildID, e.ChannelID, e.ID),
		Color:       0xFEE75C,
	}
	if e.BeforeUpdate != nil && e.BeforeUpdate.Content != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Before", Value: truncate(e.BeforeUpdate.Content, 1024),
		})
	}
	if e.Content != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "After", Value: truncate(e.Content, 1024),
		})
	}
	m.send(s, channelID, embed)
}

func (m *Module) onMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	channelID := m.logChannel(e.GuildID, eventMemberJoin)
	if channelID == "" || e.User == nil {
		return
	}

	m.send(s, channelID, &discordgo.MessageEmbed{
		Title:       "Member joined",
		Description: fmt.Sprintf("%s (`%s`) joined the server.", e.User.Mention(), e.User.Username),
		Color:       0x57F287,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: e.User.AvatarURL("")},
	})
}

func (m *Module) onMemberRemove(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
	channelID := m.logChannel(e.GuildID, eventMemberRemove)
	if channelID == "" || e.User == nil {
		return
	}

	m.send(s, channelID, &discordgo.MessageEmbed{
		Title:       "Member left",
		Description: fmt.Sprintf("%s (`%s`) left the server.", e.User.Mention(), e.User.Username),
		Color:       0x99AAB5,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: e.User.AvatarURL("")},
	})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
