package presentation

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/modules/games/domain"
)

const (
	memoryIdle       = 30 * time.Second
	mismatchRevealed = 1200 * time.Millisecond
)

var memoryPool = []string{
	"🍎", "🍌", "🍇", "🍉", "🍓", "🍒", "🥝", "🍍",
	"🥥", "🍋", "🍑", "🍐", "🥭", "🫐", "🍈", "🍊",
}

// MemoryHandler handles the /memory command, a single-player tile
// matching game on a 5x5 button grid.
type MemoryHandler struct{}

// NewMemoryHandler creates a new MemoryHandler.
func NewMemoryHandler() *MemoryHandler {
	return &MemoryHandler{}
}

// Handle starts a memory board for the invoking user.
func (h *MemoryHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	user := bot.InvokingUser(i)

	// rand.Rand is not goroutine safe; each board gets its own source.
	board, err := domain.NewBoard(rand.New(rand.NewSource(time.Now().UnixNano())), memoryPool)
	if err != nil {
		return fmt.Errorf("deal board: %w", err)
	}

	err = r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{memoryEmbed(user, board, colorBlue, "Find all the pairs!")},
			Components: memoryGrid(board, false),
		},
	})
	if err != nil {
		return fmt.Errorf("render board: %w", err)
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("fetch board message: %w", err)
	}

	col := bot.NewComponentCollector(msg.ID, bot.CollectorConfig{Idle: memoryIdle}, nil)
	col.Attach(s)

	go h.run(s, msg, board, col, user)
	return nil
}

func (h *MemoryHandler) run(s *discordgo.Session, msg *discordgo.Message, board *domain.Board, col *bot.ComponentCollector, user *discordgo.User) {
	for {
		select {
		case ic := <-col.Events():
			if bot.InvokingUser(ic).ID != user.ID {
				ephemeralNote(s, ic, "This is not your board. Start your own with /memory.")
				continue
			}

			idx, err := strconv.Atoi(strings.TrimPrefix(ic.MessageComponentData().CustomID, "memory:"))
			if err != nil {
				continue
			}

			flip, err := board.Flip(idx)
			if err != nil {
				ackUpdate(s, ic)
				continue
			}

			switch flip.Outcome {
			case domain.FlipFirst, domain.FlipMatch:
				updateMessage(s, ic, []*discordgo.MessageEmbed{memoryEmbed(user, board, colorBlue, "Find all the pairs!")}, memoryGrid(board, false))

			case domain.FlipMismatch:
				// Show the mismatched pair briefly, then hide it again.
				updateMessage(s, ic, []*discordgo.MessageEmbed{memoryEmbed(user, board, colorBlue, "No match!")},
					memoryGridRevealing(board, flip.First, flip.Second))
				time.Sleep(mismatchRevealed)
				editMessage(s, msg.ChannelID, msg.ID,
					[]*discordgo.MessageEmbed{memoryEmbed(user, board, colorBlue, "Find all the pairs!")},
					memoryGrid(board, false))

			case domain.FlipWin:
				updateMessage(s, ic, []*discordgo.MessageEmbed{memoryEmbed(user, board, colorGreen, "You cleared the board! 🎉")},
					memoryGrid(board, true))
				col.Stop("won")
			}

		case <-col.Done():
			if col.EndReason() == bot.EndReasonIdle {
				editMessage(s, msg.ChannelID, msg.ID,
					[]*discordgo.MessageEmbed{memoryEmbed(user, board, colorGrey, "The game timed out.")},
					memoryGrid(board, true))
			}
			return
		}
	}
}

func memoryEmbed(user *discordgo.User, board *domain.Board, color int, note string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Memory",
		Description: fmt.Sprintf("%s\n%d pairs remaining.", note, board.Remaining()),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Playing: " + user.Username},
	}
}

// memoryGrid renders the board as five rows of five buttons. Matched tiles
// show their symbol disabled; the currently selected tile shows its symbol;
// everything else is face down.
func memoryGrid(board *domain.Board, allDisabled bool) []discordgo.MessageComponent {
	return renderGrid(board, board.Selected(), -1, allDisabled)
}

// memoryGridRevealing additionally shows the two tiles of a mismatched
// pair before they are hidden again.
func memoryGridRevealing(board *domain.Board, first, second int) []discordgo.MessageComponent {
	return renderGrid(board, first, second, false)
}

func renderGrid(board *domain.Board, extraA, extraB int, allDisabled bool) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, 5)
	for row := 0; row < 5; row++ {
		buttons := make([]discordgo.MessageComponent, 0, 5)
		for colIdx := 0; colIdx < 5; colIdx++ {
			idx := row*5 + colIdx
			tile := board.Tile(idx)

			label := "❔"
			style := discordgo.SecondaryButton
			disabled := allDisabled
			if tile.Matched {
				label = tile.Symbol
				style = discordgo.SuccessButton
				disabled = true
			} else if idx == extraA || idx == extraB {
				label = tile.Symbol
				style = discordgo.PrimaryButton
				disabled = true
			}

			buttons = append(buttons, discordgo.Button{
				CustomID: "memory:" + strconv.Itoa(idx),
				Emoji:    &discordgo.ComponentEmoji{Name: label},
				Style:    style,
				Disabled: disabled,
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}
