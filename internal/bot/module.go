package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// DefaultCooldown applies to any handler that does not set its own.
const DefaultCooldown = 3 * time.Second

// HandlerFunc executes a matched interaction.
type HandlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

// Handler describes a registered interaction handler and the policy the
// dispatcher enforces before running it. Handlers are immutable once
// registered; a reload replaces the whole set.
type Handler struct {
	// Key is the command name or component custom ID this handler matches.
	Key string

	// KeyIsPrefix matches any incoming ID that starts with Key instead of
	// requiring exact equality.
	KeyIsPrefix bool

	// Permissions the invoking member must hold. Non-zero implies the
	// handler is guild-only.
	Permissions int64

	// BotPermissions the bot itself must hold in the channel.
	BotPermissions int64

	// DeveloperOnly restricts the handler to the configured allow-list.
	DeveloperOnly bool

	// AuthorOnly restricts component handlers to the user who triggered
	// the message the component is attached to.
	AuthorOnly bool

	// Cooldown between uses per user. Zero means DefaultCooldown.
	Cooldown time.Duration

	Run HandlerFunc
}

// CooldownAmount returns the effective cooldown for this handler.
func (h *Handler) CooldownAmount() time.Duration {
	if h.Cooldown <= 0 {
		return DefaultCooldown
	}
	return h.Cooldown
}

// EventHandler is a generic handler for any Discord event.
// It should be a function matching one of discordgo's handler signatures,
// e.g., func(s *discordgo.Session, m *discordgo.MessageCreate)
type EventHandler any

// ModuleDependencies provides dependencies that modules may need during
// initialization.
type ModuleDependencies struct {
	Config *Config
	Store  Store

	// Reload rebuilds the dispatch indexes from the loaded modules. Nil
	// outside a running bot.
	Reload func()
}

// Store is the persistence collaborator handed to modules. It is declared
// here so the bot package does not depend on the storage implementation.
type Store any

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the slash commands that this module provides.
	Commands() []*discordgo.ApplicationCommand

	// CommandHandlers returns handlers keyed by command name.
	CommandHandlers() []*Handler

	// ComponentHandlers returns handlers for button custom IDs.
	ComponentHandlers() []*Handler

	// ModalHandlers returns handlers for modal-submit custom IDs.
	ModalHandlers() []*Handler

	// SelectHandlers returns handlers for select-menu custom IDs.
	SelectHandlers() []*Handler

	// EventHandlers returns event handlers for this module.
	// Each handler should match a discordgo handler signature.
	EventHandlers() []EventHandler

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// BaseModule provides no-op defaults so modules only declare the handler
// kinds they actually use.
type BaseModule struct{}

func (BaseModule) Commands() []*discordgo.ApplicationCommand { return nil }
func (BaseModule) CommandHandlers() []*Handler               { return nil }
func (BaseModule) ComponentHandlers() []*Handler             { return nil }
func (BaseModule) ModalHandlers() []*Handler                 { return nil }
func (BaseModule) SelectHandlers() []*Handler                { return nil }
func (BaseModule) EventHandlers() []EventHandler             { return nil }
func (BaseModule) Init(ModuleDependencies) error             { return nil }
func (BaseModule) Shutdown() error                           { return nil }
