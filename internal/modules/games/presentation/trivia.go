package presentation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/modules/games/domain"
)

const triviaIdle = 30 * time.Second

// QuestionSource produces trivia questions. Difficulty and question type
// may be empty, letting the source choose.
type QuestionSource interface {
	Fetch(ctx context.Context, difficulty, qtype string) (domain.Question, error)
}

// TriviaHandler handles the /trivia command.
type TriviaHandler struct {
	source QuestionSource
}

// NewTriviaHandler creates a new TriviaHandler.
func NewTriviaHandler(source QuestionSource) *TriviaHandler {
	return &TriviaHandler{source: source}
}

// Handle fetches a question and presents it with one button per answer.
// The first click by the invoking user locks the round.
func (h *TriviaHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	user := bot.InvokingUser(i)

	var difficulty, qtype string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "difficulty":
			difficulty = opt.StringValue()
		case "type":
			qtype = opt.StringValue()
		}
	}

	// Fetching from the question source can take a while.
	if err := r.Defer(false); err != nil {
		return fmt.Errorf("defer reply: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	question, err := h.source.Fetch(ctx, difficulty, qtype)
	if err != nil {
		return fmt.Errorf("fetch question: %w", err)
	}
	round := domain.NewRound(question)

	msg, err := r.Edit(&discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{triviaEmbed(user, question, colorBlue, "")},
		Components: &[]discordgo.MessageComponent{triviaRow(question, -1, false)},
	})
	if err != nil {
		return fmt.Errorf("render question: %w", err)
	}

	col := bot.NewComponentCollector(msg.ID, bot.CollectorConfig{Idle: triviaIdle}, nil)
	col.Attach(s)

	go h.run(s, msg, round, col, user)
	return nil
}

func (h *TriviaHandler) run(s *discordgo.Session, msg *discordgo.Message, round *domain.Round, col *bot.ComponentCollector, user *discordgo.User) {
	question := round.Question

	for {
		select {
		case ic := <-col.Events():
			if bot.InvokingUser(ic).ID != user.ID {
				ephemeralNote(s, ic, "This question is not yours to answer.")
				continue
			}

			idx, err := strconv.Atoi(strings.TrimPrefix(ic.MessageComponentData().CustomID, "trivia:"))
			if err != nil {
				continue
			}

			correct, err := round.Answer(idx)
			if err != nil {
				ackUpdate(s, ic)
				continue
			}

			color, note := colorGreen, "Correct! 🎉"
			if !correct {
				color = colorRed
				note = fmt.Sprintf("Wrong! The correct answer was **%s**.", question.Answers[question.CorrectIndex])
			}
			updateMessage(s, ic,
				[]*discordgo.MessageEmbed{triviaEmbed(user, question, color, note)},
				[]discordgo.MessageComponent{triviaRow(question, idx, true)})
			col.Stop("answered")

		case <-col.Done():
			if col.EndReason() == bot.EndReasonIdle {
				note := fmt.Sprintf("Time's up! The correct answer was **%s**.", question.Answers[question.CorrectIndex])
				editMessage(s, msg.ChannelID, msg.ID,
					[]*discordgo.MessageEmbed{triviaEmbed(user, question, colorGrey, note)},
					[]discordgo.MessageComponent{triviaRow(question, -1, true)})
			}
			return
		}
	}
}

func triviaEmbed(user *discordgo.User, q domain.Question, color int, note string) *discordgo.MessageEmbed {
	desc := q.Prompt
	if note != "" {
		desc += "\n\n" + note
	}
	return &discordgo.MessageEmbed{
		Title:       "Trivia",
		Description: desc,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: q.Category, Inline: true},
			{Name: "Difficulty", Value: q.Difficulty, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Answering: " + user.Username},
	}
}

// triviaRow renders one button per answer. After the round is over the
// correct answer turns green and a wrong pick turns red.
func triviaRow(q domain.Question, picked int, done bool) discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(q.Answers))
	for idx, answer := range q.Answers {
		style := discordgo.SecondaryButton
		if done {
			switch {
			case idx == q.CorrectIndex:
				style = discordgo.SuccessButton
			case idx == picked:
				style = discordgo.DangerButton
			}
		}
		buttons = append(buttons, discordgo.Button{
			CustomID: "trivia:" + strconv.Itoa(idx),
			Label:    answer,
			Style:    style,
			Disabled: done,
		})
	}
	return discordgo.ActionsRow{Components: buttons}
}
