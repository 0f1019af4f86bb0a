package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// EndReason describes why a collector stopped. Expiry fires end exactly
// once; finalization (disabling components, rendering the result) must
// happen on end and nowhere else.
type EndReason string

const (
	// EndReasonIdle means no event arrived within the idle window.
	EndReasonIdle EndReason = "idle"
	// EndReasonTime means the absolute lifetime elapsed.
	EndReasonTime EndReason = "time"
)

// CollectorConfig bounds a collector's lifetime. At least one of Idle or
// Timeout should be set; Idle resets on every collected event, Timeout is
// fixed from creation.
type CollectorConfig struct {
	Idle    time.Duration
	Timeout time.Duration
}

type collectorCore struct {
	mu        sync.Mutex
	ended     bool
	reason    EndReason
	done      chan struct{}
	idle      time.Duration
	idleTimer *time.Timer
	absTimer  *time.Timer
	remove    func()
}

func newCollectorCore(cfg CollectorConfig) *collectorCore {
	c := &collectorCore{
		done: make(chan struct{}),
		idle: cfg.Idle,
	}
	if cfg.Idle > 0 {
		c.idleTimer = time.AfterFunc(cfg.Idle, func() { c.stop(EndReasonIdle) })
	}
	if cfg.Timeout > 0 {
		c.absTimer = time.AfterFunc(cfg.Timeout, func() { c.stop(EndReasonTime) })
	}
	return c
}

// touch resets the idle window. Returns false once the collector has ended,
// at which point no further events are accepted.
func (c *collectorCore) touch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ended {
		return false
	}
	if c.idleTimer != nil {
		c.idleTimer.Reset(c.idle)
	}
	return true
}

func (c *collectorCore) stop(reason EndReason) {
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return
	}
	c.ended = true
	c.reason = reason
	if c.idleTimer != nil {
		c.idleTimer.Stop()
	}
	if c.absTimer != nil {
		c.absTimer.Stop()
	}
	remove := c.remove
	c.mu.Unlock()

	if remove != nil {
		remove()
	}
	close(c.done)
}

func (c *collectorCore) setRemove(remove func()) {
	c.mu.Lock()
	c.remove = remove
	c.mu.Unlock()
}

// Done is closed exactly once when the collector ends.
func (c *collectorCore) Done() <-chan struct{} { return c.done }

// EndReason is valid once Done is closed.
func (c *collectorCore) EndReason() EndReason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// ComponentCollector gathers component interactions on a single message,
// bounded by an idle or absolute timeout. Events are delivered in gateway
// order; there is no ordering guarantee across collectors.
type ComponentCollector struct {
	*collectorCore
	messageID string
	filter    func(*discordgo.InteractionCreate) bool
	events    chan *discordgo.InteractionCreate
}

// NewComponentCollector creates a collector scoped to messageID. The
// optional filter drops non-matching events without consuming them.
func NewComponentCollector(messageID string, cfg CollectorConfig, filter func(*discordgo.InteractionCreate) bool) *ComponentCollector {
	return &ComponentCollector{
		collectorCore: newCollectorCore(cfg),
		messageID:     messageID,
		filter:        filter,
		events:        make(chan *discordgo.InteractionCreate, 16),
	}
}

// Attach subscribes the collector to the session. The subscription is
// removed when the collector stops.
func (c *ComponentCollector) Attach(s *discordgo.Session) {
	c.setRemove(s.AddHandler(c.Handle))
}

// Handle feeds one gateway event into the collector. Exposed so tests can
// inject events without a session.
func (c *ComponentCollector) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if i.Message == nil || i.Message.ID != c.messageID {
		return
	}
	if c.filter != nil && !c.filter(i) {
		return
	}
	if !c.touch() {
		return
	}
	select {
	case c.events <- i:
	default:
	}
}

// Events delivers collected interactions.
func (c *ComponentCollector) Events() <-chan *discordgo.InteractionCreate {
	return c.events
}

// Stop ends the collector with an explicit reason.
func (c *ComponentCollector) Stop(reason EndReason) {
	c.stop(reason)
}

// MessageCollector gathers chat messages in a single channel, bounded the
// same way as ComponentCollector.
type MessageCollector struct {
	*collectorCore
	channelID string
	filter    func(*discordgo.MessageCreate) bool
	events    chan *discordgo.MessageCreate
}

// NewMessageCollector creates a collector scoped to channelID.
func NewMessageCollector(channelID string, cfg CollectorConfig, filter func(*discordgo.MessageCreate) bool) *MessageCollector {
	return &MessageCollector{
		collectorCore: newCollectorCore(cfg),
		channelID:     channelID,
		filter:        filter,
		events:        make(chan *discordgo.MessageCreate, 16),
	}
}

// Attach subscribes the collector to the session.
func (c *MessageCollector) Attach(s *discordgo.Session) {
	c.setRemove(s.AddHandler(c.Handle))
}

// Handle feeds one gateway event into the collector.
func (c *MessageCollector) Handle(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.ChannelID != c.channelID {
		return
	}
	if c.filter != nil && !c.filter(m) {
		return
	}
	if !c.touch() {
		return
	}
	select {
	case c.events <- m:
	default:
	}
}

// Events delivers collected messages.
func (c *MessageCollector) Events() <-chan *discordgo.MessageCreate {
	return c.events
}

// Stop ends the collector with an explicit reason.
func (c *MessageCollector) Stop(reason EndReason) {
	c.stop(reason)
}
