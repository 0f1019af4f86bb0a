package presentation

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/modules/games/domain"
)

const rpsIdle = 30 * time.Second

// RPSHandler handles the /rps command: solo against the bot, or against a
// challenged opponent after the invitation protocol.
type RPSHandler struct{}

// NewRPSHandler creates a new RPSHandler.
func NewRPSHandler() *RPSHandler {
	return &RPSHandler{}
}

// Handle starts a rock-paper-scissors round.
func (h *RPSHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	user := bot.InvokingUser(i)

	var opponent *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "opponent" {
			opponent = opt.UserValue(s)
		}
	}

	if opponent != nil {
		if opponent.ID == user.ID {
			return respondEphemeral(r, "You cannot challenge yourself.")
		}
		if opponent.Bot {
			return respondEphemeral(r, "You cannot challenge a bot. Leave the opponent empty to play against me.")
		}

		accepted, err := runInvite(s, i, r, user, opponent, "rock-paper-scissors")
		if err != nil {
			return err
		}
		if !accepted {
			return nil
		}
	}

	match := domain.NewMatch(user.ID, botSeat(s, opponent))
	if opponent == nil {
		// Pre-assigned before the collector starts, so a solo round can
		// never time out without resolving.
		match.CommitOpponent(domain.Pick(1 + rand.Intn(3)))
	}

	embed := rpsEmbed(user, opponent, nil)
	buttons := rpsButtons(false)

	if opponent != nil {
		// The invitation already consumed the initial response.
		content := ""
		if _, err := r.Edit(&discordgo.WebhookEdit{
			Content:    &content,
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &buttons,
		}); err != nil {
			return fmt.Errorf("render game: %w", err)
		}
	} else {
		err := r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: buttons,
			},
		})
		if err != nil {
			return fmt.Errorf("render game: %w", err)
		}
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("fetch game message: %w", err)
	}

	col := bot.NewComponentCollector(msg.ID, bot.CollectorConfig{Idle: rpsIdle}, nil)
	col.Attach(s)

	go h.run(s, msg, match, col, user, opponent)
	return nil
}

func (h *RPSHandler) run(s *discordgo.Session, msg *discordgo.Message, match *domain.Match, col *bot.ComponentCollector, user, opponent *discordgo.User) {
	for {
		select {
		case ic := <-col.Events():
			clicker := bot.InvokingUser(ic).ID
			pick := domain.ParsePick(strings.TrimPrefix(ic.MessageComponentData().CustomID, "rps:"))
			if pick == domain.PickNone {
				continue
			}

			complete, err := match.Commit(clicker, pick)
			switch err {
			case domain.ErrNotParticipant:
				ephemeralNote(s, ic, "You are not part of this game.")
				continue
			case domain.ErrAlreadyPicked:
				ephemeralNote(s, ic, "You already locked in your pick.")
				continue
			}

			if complete {
				ackUpdate(s, ic)
				col.Stop("resolved")
				continue
			}
			// Partial move: acknowledge and keep collecting.
			ephemeralNote(s, ic, fmt.Sprintf("You picked %s. Waiting for the other player…", pick))

		case <-col.Done():
			embed := rpsEmbed(user, opponent, match)
			editMessage(s, msg.ChannelID, msg.ID, []*discordgo.MessageEmbed{embed}, bot.DisableComponents(rpsButtons(false)))
			return
		}
	}
}

func botSeat(s *discordgo.Session, opponent *discordgo.User) string {
	if opponent != nil {
		return opponent.ID
	}
	if s != nil && s.State != nil && s.State.User != nil {
		return s.State.User.ID
	}
	return "bot"
}

func rpsButtons(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: "rps:rock", Label: "Rock", Emoji: &discordgo.ComponentEmoji{Name: "🪨"}, Style: discordgo.PrimaryButton, Disabled: disabled},
			discordgo.Button{CustomID: "rps:paper", Label: "Paper", Emoji: &discordgo.ComponentEmoji{Name: "📄"}, Style: discordgo.PrimaryButton, Disabled: disabled},
			discordgo.Button{CustomID: "rps:scissors", Label: "Scissors", Emoji: &discordgo.ComponentEmoji{Name: "✂️"}, Style: discordgo.PrimaryButton, Disabled: disabled},
		}},
	}
}

// rpsEmbed renders the round. A nil match renders the starting prompt; a
// finished match renders the outcome.
func rpsEmbed(user, opponent *discordgo.User, match *domain.Match) *discordgo.MessageEmbed {
	title := "Rock Paper Scissors"
	opponentName := "the bot"
	if opponent != nil {
		opponentName = opponent.Username
	}

	if match == nil {
		return &discordgo.MessageEmbed{
			Title:       title,
			Description: fmt.Sprintf("%s vs %s — make your pick!", user.Username, opponentName),
			Color:       colorBlue,
		}
	}

	player, opp := match.Picks()
	var desc string
	var color int
	switch match.Resolve() {
	case domain.OutcomePlayer:
		desc = fmt.Sprintf("**%s wins!** %s beats %s.", user.Username, player, opp)
		color = colorGreen
	case domain.OutcomeOpponent:
		desc = fmt.Sprintf("**%s wins!** %s beats %s.", opponentName, opp, player)
		color = colorRed
	case domain.OutcomeTie:
		desc = fmt.Sprintf("It's a tie — both picked %s.", player)
		color = colorGrey
	default:
		desc = "The round timed out before everyone picked."
		color = colorGrey
	}
	return &discordgo.MessageEmbed{Title: title, Description: desc, Color: color}
}

func respondEphemeral(r bot.Responder, content string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
