package presentation

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
)

const inviteTimeout = 30 * time.Second

// runInvite posts a challenge addressed to the opponent with Accept and
// Reject buttons and waits for their decision. Only the invited user's
// click is honored. On reject or timeout the message is edited into a
// failure state and false is returned; the game must not start.
func runInvite(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder, host, opponent *discordgo.User, game string) (bool, error) {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: "invite:accept", Label: "Accept", Style: discordgo.SuccessButton},
			discordgo.Button{CustomID: "invite:decline", Label: "Reject", Style: discordgo.DangerButton},
		}},
	}
	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("<@%s>, %s challenges you to %s!", opponent.ID, host.Mention(), game),
			Components: components,
		},
	})
	if err != nil {
		return false, fmt.Errorf("send invitation: %w", err)
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return false, fmt.Errorf("fetch invitation message: %w", err)
	}

	col := bot.NewComponentCollector(msg.ID, bot.CollectorConfig{Timeout: inviteTimeout}, nil)
	col.Attach(s)

	for {
		select {
		case ic := <-col.Events():
			if bot.InvokingUser(ic).ID != opponent.ID {
				ephemeralNote(s, ic, "This invitation is not for you.")
				continue
			}
			switch ic.MessageComponentData().CustomID {
			case "invite:accept":
				ackUpdate(s, ic)
				col.Stop("accepted")
			case "invite:decline":
				ackUpdate(s, ic)
				col.Stop("declined")
			}
		case <-col.Done():
			if col.EndReason() == "accepted" {
				return true, nil
			}
			content := fmt.Sprintf("%s did not respond to the challenge in time.", opponent.Mention())
			if col.EndReason() == "declined" {
				content = fmt.Sprintf("%s rejected the challenge.", opponent.Mention())
			}
			disabled := bot.DisableComponents(components)
			if _, err := r.Edit(&discordgo.WebhookEdit{
				Content:    &content,
				Components: &disabled,
			}); err != nil {
				return false, fmt.Errorf("edit invitation: %w", err)
			}
			return false, nil
		}
	}
}

// ackUpdate acknowledges a component click without visibly changing the
// message; the caller edits it afterwards.
func ackUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}
