// Package tickets provides a support ticket flow: an admin posts a panel
// with an open button, members file a subject through a modal, and each
// ticket gets its own private channel.
package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/storage"
)

func init() {
	bot.Register(&Module{})
}

const maxOpenPerUser = 3

type Module struct {
	bot.BaseModule

	store *storage.Store
}

func (m *Module) Name() string {
	return "tickets"
}

func (m *Module) Init(deps bot.ModuleDependencies) error {
	store, ok := deps.Store.(*storage.Store)
	if !ok {
		return fmt.Errorf("tickets module requires a storage.Store")
	}
	m.store = store
	return nil
}

func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ticketpanel",
			Description: "Post the ticket panel in this channel",
		},
	}
}

func (m *Module) CommandHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key:         "ticketpanel",
			Permissions: discordgo.PermissionAdministrator,
			Run:         m.handlePanel,
		},
	}
}

func (m *Module) ComponentHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key: "ticket:open",
			Run: m.handleOpenButton,
		},
		{
			Key:         "ticket:close:",
			KeyIsPrefix: true,
			Run:         m.handleCloseButton,
		},
	}
}

func (m *Module) ModalHandlers() []*bot.Handler {
	return []*bot.Handler{
		{
			Key: "ticket-modal",
			Run: m.handleModal,
		},
	}
}

func (m *Module) handlePanel(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Support",
				Description: "Need help? Open a ticket and a staff member will be with you.",
				Color:       0x5865F2,
			}},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{
						CustomID: "ticket:open",
						Label:    "Open a ticket",
						Emoji:    &discordgo.ComponentEmoji{Name: "🎫"},
						Style:    discordgo.PrimaryButton,
					},
				}},
			},
		},
	})
}

// handleOpenButton checks the open-ticket cap, then asks for the subject
// through a modal.
func (m *Module) handleOpenButton(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	user := bot.InvokingUser(i)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	open, err := m.store.Tickets.CountOpenByUser(ctx, i.GuildID, user.ID)
	if err != nil {
		return fmt.Errorf("count open tickets: %w", err)
	}
	if open >= maxOpenPerUser {
		return r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("You already have %d open tickets. Close one before opening another.", open),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "ticket-modal",
			Title:    "Open a ticket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "subject",
						Label:       "What do you need help with?",
						Style:       discordgo.TextInputShort,
						Required:    true,
						MaxLength:   100,
						Placeholder: "Briefly describe your issue",
					},
				}},
			},
		},
	})
}

// handleModal creates the ticket channel and records the ticket.
func (m *Module) handleModal(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	user := bot.InvokingUser(i)
	subject := modalInput(i, "subject")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := m.store.Settings.Get(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	ticketID := snowflake.New(time.Now()).String()

	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   i.GuildID, // @everyone
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    user.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
		},
		{
			ID:    s.State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionManageChannels,
		},
	}

	ch, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 "ticket-" + user.Username,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                subject,
		ParentID:             cfg.TicketCategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return fmt.Errorf("create ticket channel: %w", err)
	}

	err = m.store.Tickets.Create(ctx, storage.Ticket{
		ID:        ticketID,
		GuildID:   i.GuildID,
		UserID:    user.ID,
		ChannelID: ch.ID,
		Subject:   subject,
	})
	if err != nil {
		// The channel exists but the row does not; remove the channel so
		// the two stay consistent.
		if _, derr := s.ChannelDelete(ch.ID); derr != nil {
			slog.Error("failed to roll back ticket channel", "channel_id", ch.ID, "error", derr)
		}
		return fmt.Errorf("store ticket: %w", err)
	}

	_, err = s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content: user.Mention(),
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Ticket: " + subject,
			Description: "A staff member will be with you shortly. Use the button below to close this ticket.",
			Color:       0x5865F2,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: "ticket:close:" + ticketID,
					Label:    "Close ticket",
					Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
					Style:    discordgo.DangerButton,
				},
			}},
		},
	})
	if err != nil {
		slog.Error("failed to post ticket opener", "channel_id", ch.ID, "error", err)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Your ticket is ready: <#%s>", ch.ID),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// handleCloseButton closes the ticket behind the channel it was clicked
// in. The opener or anyone who can manage channels may close it.
func (m *Module) handleCloseButton(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	user := bot.InvokingUser(i)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ticket, err := m.store.Tickets.GetByChannel(ctx, i.ChannelID)
	if err == storage.ErrNotFound {
		return r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "This channel is not a ticket.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
	if err != nil {
		return fmt.Errorf("load ticket: %w", err)
	}

	canManage := i.Member != nil && i.Member.Permissions&discordgo.PermissionManageChannels != 0
	if user.ID != ticket.UserID && !canManage {
		return r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Only the ticket opener or staff can close this ticket.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
	if !ticket.Open {
		return r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "This ticket is already closed.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}

	if err := m.store.Tickets.Close(ctx, ticket.ID); err != nil {
		return fmt.Errorf("close ticket: %w", err)
	}

	err = r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Ticket closed by %s. This channel will be deleted shortly.", user.Mention()),
		},
	})
	if err != nil {
		return err
	}

	// Leave the closing note readable for a moment before deleting.
	go func(channelID string) {
		time.Sleep(5 * time.Second)
		if _, err := s.ChannelDelete(channelID); err != nil {
			slog.Error("failed to delete ticket channel", "channel_id", channelID, "error", err)
		}
	}(ticket.ChannelID)

	return nil
}

// modalInput extracts a text input value from a modal submission.
func modalInput(i *discordgo.InteractionCreate, customID string) string {
	for _, row := range i.ModalSubmitData().Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
