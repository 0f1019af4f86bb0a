package presentation

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Embed colors shared by the game renderers.
const (
	colorBlue  = 0x5865F2
	colorGreen = 0x57F287
	colorRed   = 0xED4245
	colorGrey  = 0x99AAB5
)

// ephemeralNote answers a collected component interaction with a private
// message, e.g. rejecting a click from a non-participant without consuming
// a turn. Send failures are logged and abandoned.
func ephemeralNote(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to send ephemeral note", "error", err)
	}
}

// updateMessage answers a collected component interaction by editing the
// message it is attached to, which also acknowledges the click.
func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
	if err != nil {
		slog.Error("failed to update game message", "error", err)
	}
}

// editMessage edits a game message outside an interaction response, e.g.
// on a collector timeout.
func editMessage(s *discordgo.Session, channelID, messageID string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		slog.Error("failed to edit game message", "error", err)
	}
}
