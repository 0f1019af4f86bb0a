package presentation

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/modules/games/domain"
)

const raceTimeout = 60 * time.Second

// FastTypeHandler handles the /fasttype command, a typing race scored on
// the invoking user's first message in the channel.
type FastTypeHandler struct{}

// NewFastTypeHandler creates a new FastTypeHandler.
func NewFastTypeHandler() *FastTypeHandler {
	return &FastTypeHandler{}
}

// Handle posts the prompt sentence and waits for the user's attempt.
func (h *FastTypeHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	user := bot.InvokingUser(i)
	sentence := domain.Sentences[rand.Intn(len(domain.Sentences))]

	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Fast Type",
				Description: fmt.Sprintf("%s, type the sentence below as fast as you can!\n\n```\n%s\n```", user.Mention(), sentence),
				Color:       colorBlue,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	// The clock starts once the prompt is visible.
	race := domain.NewRace(sentence, time.Now())

	col := bot.NewMessageCollector(i.ChannelID, bot.CollectorConfig{Timeout: raceTimeout},
		func(m *discordgo.MessageCreate) bool {
			return m.Author != nil && m.Author.ID == user.ID
		})
	col.Attach(s)

	go h.run(r, race, col, user)
	return nil
}

func (h *FastTypeHandler) run(r bot.Responder, race *domain.Race, col *bot.MessageCollector, user *discordgo.User) {
	for {
		select {
		case m := <-col.Events():
			result := race.Score(m.Content, time.Now())
			col.Stop("finished")

			if _, err := r.Followup(false, &discordgo.WebhookParams{
				Embeds: []*discordgo.MessageEmbed{raceEmbed(user, result)},
			}); err != nil {
				slog.Error("failed to post race result", "error", err)
			}

		case <-col.Done():
			if col.EndReason() == bot.EndReasonTime {
				_, _ = r.Followup(false, &discordgo.WebhookParams{
					Content: fmt.Sprintf("%s, time's up! No attempt received within %d seconds.", user.Mention(), int(raceTimeout.Seconds())),
				})
			}
			return
		}
	}
}

func raceEmbed(user *discordgo.User, result domain.RaceResult) *discordgo.MessageEmbed {
	color := colorGreen
	verdict := "Perfect match! 🎉"
	if !result.Exact {
		color = colorRed
		verdict = fmt.Sprintf("Not quite. Your attempt was %d%% similar.", result.Similarity)
	}
	return &discordgo.MessageEmbed{
		Title:       "Race Result",
		Description: verdict,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Time", Value: fmt.Sprintf("%.2fs", result.Elapsed.Seconds()), Inline: true},
			{Name: "Speed", Value: fmt.Sprintf("%.2f WPM", result.WPM), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Racer: " + user.Username},
	}
}
