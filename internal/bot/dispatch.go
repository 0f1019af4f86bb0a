package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// handlerIndex resolves incoming IDs in two tiers: an exact-match table,
// then an ordered list of prefix matchers consulted only on a miss. The
// first registered handler wins in both tiers.
type handlerIndex struct {
	exact  map[string]*Handler
	prefix []*Handler
}

func newHandlerIndex() *handlerIndex {
	return &handlerIndex{exact: make(map[string]*Handler)}
}

func (x *handlerIndex) add(h *Handler) {
	if h == nil || h.Key == "" {
		return
	}
	if h.KeyIsPrefix {
		x.prefix = append(x.prefix, h)
		return
	}
	if _, ok := x.exact[h.Key]; !ok {
		x.exact[h.Key] = h
	}
}

func (x *handlerIndex) resolve(id string) *Handler {
	if h, ok := x.exact[id]; ok {
		return h
	}
	for _, h := range x.prefix {
		if strings.HasPrefix(id, h.Key) {
			return h
		}
	}
	return nil
}

// Dispatcher routes interactions to registered handlers and enforces the
// shared policy gate (author-only, permissions, developer-only, cooldown)
// before invoking them. It never lets a handler error or panic escape.
type Dispatcher struct {
	cfg    *Config
	ledger *Ledger

	mu         sync.RWMutex
	commands   *handlerIndex
	components *handlerIndex
	modals     *handlerIndex
	selects    *handlerIndex
}

// NewDispatcher creates a dispatcher with empty handler indexes.
func NewDispatcher(cfg *Config) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		ledger: NewLedger(),
	}
	d.Reload(nil)
	return d
}

// Reload rebuilds every handler index from the given modules, replacing
// the previous handler set wholesale.
func (d *Dispatcher) Reload(modules []Module) {
	commands := newHandlerIndex()
	components := newHandlerIndex()
	modals := newHandlerIndex()
	selects := newHandlerIndex()

	for _, mod := range modules {
		for _, h := range mod.CommandHandlers() {
			commands.add(h)
		}
		for _, h := range mod.ComponentHandlers() {
			components.add(h)
		}
		for _, h := range mod.ModalHandlers() {
			modals.add(h)
		}
		for _, h := range mod.SelectHandlers() {
			selects.add(h)
		}
	}

	d.mu.Lock()
	d.commands = commands
	d.components = components
	d.modals = modals
	d.selects = selects
	d.mu.Unlock()
}

// HandleInteraction is the discordgo entry point for all interaction kinds.
func (d *Dispatcher) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	d.dispatch(s, i, NewDiscordResponder(s, i.Interaction))
}

// dispatch resolves and runs at most one handler for the interaction.
// Unroutable interactions are a silent no-op: component IDs frequently
// belong to collectors or other subsystems.
func (d *Dispatcher) dispatch(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) {
	var (
		key  string
		kind string
	)

	d.mu.RLock()
	var index *handlerIndex
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		key = i.ApplicationCommandData().Name
		kind = "command"
		index = d.commands
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		key = data.CustomID
		if isSelect(data.ComponentType) {
			kind = "select"
			index = d.selects
		} else {
			kind = "component"
			index = d.components
		}
	case discordgo.InteractionModalSubmit:
		key = i.ModalSubmitData().CustomID
		kind = "modal"
		index = d.modals
	default:
		d.mu.RUnlock()
		return
	}
	h := index.resolve(key)
	d.mu.RUnlock()

	if h == nil {
		return
	}

	if !d.checkPolicy(h, i, r) {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("handler panicked", "kind", kind, "key", h.Key, "panic", rec)
			d.reportFailure(r, fmt.Sprintf("%v", rec))
		}
	}()

	if err := h.Run(s, i, r); err != nil {
		slog.Error("handler failed", "kind", kind, "key", h.Key, "error", err)
		d.reportFailure(r, err.Error())
	}
}

// checkPolicy runs the pre-execution checks in order, sending an ephemeral
// rejection and returning false on the first failure.
func (d *Dispatcher) checkPolicy(h *Handler, i *discordgo.InteractionCreate, r Responder) bool {
	user := InvokingUser(i)
	if user == nil {
		return false
	}

	if h.AuthorOnly {
		if author := messageAuthor(i); author != "" && author != user.ID {
			rejectEphemeral(r, "Only the user who started this interaction can use it.")
			return false
		}
	}

	if h.Permissions != 0 {
		if i.Member == nil {
			rejectEphemeral(r, "This can only be used in a server.")
			return false
		}
		if i.Member.Permissions&h.Permissions != h.Permissions {
			rejectEphemeral(r, "You are missing the permissions required for this.")
			return false
		}
	}

	if h.BotPermissions != 0 && i.AppPermissions&h.BotPermissions != h.BotPermissions {
		rejectEphemeral(r, "I am missing the permissions required for this.")
		return false
	}

	if h.DeveloperOnly && !d.cfg.IsDeveloper(user.ID) {
		rejectEphemeral(r, "This is restricted to the bot developers.")
		return false
	}

	amount := h.CooldownAmount()
	if resume, cooling := d.ledger.Check(h.Key, user.ID, amount); cooling {
		rejectEphemeral(r, fmt.Sprintf("You are on cooldown. Try again <t:%d:R>.", resume.Unix()))
		return false
	}
	d.ledger.Arm(h.Key, user.ID, amount)

	return true
}

// reportFailure surfaces a handler fault to the user, editing the reply if
// the interaction was already acknowledged.
func (d *Dispatcher) reportFailure(r Responder, detail string) {
	content := "An error occurred: `" + detail + "`"
	if r.Acknowledged() {
		if _, err := r.Edit(&discordgo.WebhookEdit{Content: &content}); err != nil {
			slog.Error("failed to edit failure report", "error", err)
		}
		return
	}
	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to send failure report", "error", err)
	}
}

func rejectEphemeral(r Responder, content string) {
	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to send policy rejection", "error", err)
	}
}

func isSelect(t discordgo.ComponentType) bool {
	switch t {
	case discordgo.SelectMenuComponent,
		discordgo.UserSelectMenuComponent,
		discordgo.RoleSelectMenuComponent,
		discordgo.MentionableSelectMenuComponent,
		discordgo.ChannelSelectMenuComponent:
		return true
	}
	return false
}

// InvokingUser returns the invoking user for guild or DM interactions.
func InvokingUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// messageAuthor returns the user who triggered the message a component is
// attached to, or empty when that cannot be determined.
func messageAuthor(i *discordgo.InteractionCreate) string {
	if i.Message == nil {
		return ""
	}
	if i.Message.Interaction != nil && i.Message.Interaction.User != nil {
		return i.Message.Interaction.User.ID
	}
	if i.Message.ReferencedMessage != nil && i.Message.ReferencedMessage.Author != nil {
		return i.Message.ReferencedMessage.Author.ID
	}
	return ""
}
