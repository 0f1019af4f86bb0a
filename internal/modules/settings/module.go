// Package settings provides the /config command for per-guild
// configuration: audit log channel, leveling, and ticket category.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/storage"
)

func init() {
	bot.Register(&Module{})
}

// auditEventChoices are the mirrorable gateway events a guild can opt in
// to. The values match the audit module's event keys.
var auditEventChoices = []struct {
	Label string
	Value string
}{
	{"Message deleted", "message_delete"},
	{"Message edited", "message_update"},
	{"Member joined", "member_join"},
	{"Member left", "member_remove"},
}

type Module struct {
	bot.BaseModule

	store *storage.Store
}

func (m *Module) Name() string {
	return "settings"
}

func (m *Module) Init(deps bot.ModuleDependencies) error {
	store, ok := deps.Store.(*storage.Store)
	if !ok {
		return fmt.Errorf("settings module requires a storage.Store")
	}
	m.store = store
	return nil
}

func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "config",
			Description: "Show or change this server's bot configuration",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current configuration",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Change one or more settings",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "log_channel",
							Description:  "Channel for audit log messages",
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "leveling",
							Description: "Enable or disable message leveling",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "xp_rate",
							Description: "XP awarded per counted message (1-100)",
							MinValue:    ptr(1.0),
							MaxValue:    100,
						},
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "ticket_category",
							Description:  "Category that new ticket channels are created under",
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "audit",
					Description: "Choose which events are mirrored to the log channel",
				},
			},
		},
	}
}

func (m *Module) CommandHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key:         "config",
			Permissions: discordgo.PermissionAdministrator,
			Run:         m.handleConfig,
		},
	}
}

func (m *Module) SelectHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key:         "audit-events",
			Permissions: discordgo.PermissionAdministrator,
			AuthorOnly:  true,
			Run:         m.handleAuditSelect,
		},
	}
}

func (m *Module) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "show":
		return m.handleShow(i, r)
	case "set":
		return m.handleSet(i, r, sub.Options)
	case "audit":
		return m.handleAuditPrompt(i, r)
	}
	return fmt.Errorf("unknown config subcommand %q", sub.Name)
}

func (m *Module) handleShow(i *discordgo.InteractionCreate, r bot.Responder) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := m.store.Settings.Get(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title: "Server Configuration",
				Color: 0x5865F2,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Log channel", Value: channelMention(cfg.LogChannelID), Inline: true},
					{Name: "Leveling", Value: onOff(cfg.LevelingEnabled), Inline: true},
					{Name: "XP rate", Value: fmt.Sprint(cfg.XPRate), Inline: true},
					{Name: "Ticket category", Value: channelMention(cfg.TicketCategoryID), Inline: true},
					{Name: "Audit events", Value: eventList(cfg.AuditEvents), Inline: false},
				},
			}},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func (m *Module) handleSet(i *discordgo.InteractionCreate, r bot.Responder, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var u storage.GuildSettingsUpdate
	for _, opt := range opts {
		switch opt.Name {
		case "log_channel":
			v := opt.Value.(string)
			u.LogChannelID = &v
		case "leveling":
			v := opt.BoolValue()
			u.LevelingEnabled = &v
		case "xp_rate":
			v := int(opt.IntValue())
			u.XPRate = &v
		case "ticket_category":
			v := opt.Value.(string)
			u.TicketCategoryID = &v
		}
	}
	if u == (storage.GuildSettingsUpdate{}) {
		return r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Nothing to change. Pass at least one option.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.store.Settings.Update(ctx, i.GuildID, u); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Configuration updated.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// handleAuditPrompt posts the multi-select of mirrorable events with the
// guild's current picks pre-selected.
func (m *Module) handleAuditPrompt(i *discordgo.InteractionCreate, r bot.Responder) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := m.store.Settings.Get(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	current := make(map[string]bool, len(cfg.AuditEvents))
	for _, e := range cfg.AuditEvents {
		current[e] = true
	}

	options := make([]discordgo.SelectMenuOption, 0, len(auditEventChoices))
	for _, c := range auditEventChoices {
		options = append(options, discordgo.SelectMenuOption{
			Label:   c.Label,
			Value:   c.Value,
			Default: current[c.Value],
		})
	}

	minValues := 0
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Select the events to mirror to the log channel.",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						CustomID:  "audit-events",
						MinValues: &minValues,
						MaxValues: len(options),
						Options:   options,
					},
				}},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func (m *Module) handleAuditSelect(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	picked := i.MessageComponentData().Values

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.store.Settings.Update(ctx, i.GuildID, storage.GuildSettingsUpdate{
		AuditEvents: &picked,
	}); err != nil {
		return fmt.Errorf("update audit events: %w", err)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "Audit events updated: " + eventList(picked),
			Components: []discordgo.MessageComponent{},
		},
	})
}

func channelMention(id string) string {
	if id == "" {
		return "not set"
	}
	return "<#" + id + ">"
}

func onOff(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

func eventList(events []string) string {
	if len(events) == 0 {
		return "none"
	}
	return "`" + strings.Join(events, "`, `") + "`"
}

func ptr[T any](v T) *T { return &v }
