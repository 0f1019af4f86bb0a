package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Respond sends the initial response to an interaction.
	Respond(response *discordgo.InteractionResponse) error

	// Defer acknowledges the interaction without content, buying time for
	// slow work. Ephemeral hides the eventual reply from other users.
	Defer(ephemeral bool) error

	// Edit updates the original interaction response.
	Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error)

	// Followup sends an additional message after the initial response.
	Followup(ephemeral bool, params *discordgo.WebhookParams) (*discordgo.Message, error)

	// Acknowledged reports whether an initial response or deferral has
	// already been sent. The dispatcher uses this to pick between reply
	// and edit when reporting a handler failure.
	Acknowledged() bool
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction

	mu    sync.Mutex
	acked bool
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends a response to the interaction via Discord API.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	err := r.session.InteractionRespond(r.interaction, response)
	if err == nil {
		r.setAcked()
	}
	return err
}

// Defer sends a deferred-response acknowledgement.
func (r *DiscordResponder) Defer(ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err == nil {
		r.setAcked()
	}
	return err
}

// Edit updates the original interaction response.
func (r *DiscordResponder) Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	return r.session.InteractionResponseEdit(r.interaction, edit)
}

// Followup sends a follow-up message.
func (r *DiscordResponder) Followup(ephemeral bool, params *discordgo.WebhookParams) (*discordgo.Message, error) {
	if ephemeral {
		params.Flags |= discordgo.MessageFlagsEphemeral
	}
	return r.session.FollowupMessageCreate(r.interaction, true, params)
}

// Acknowledged reports whether the interaction has been responded to.
func (r *DiscordResponder) Acknowledged() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acked
}

func (r *DiscordResponder) setAcked() {
	r.mu.Lock()
	r.acked = true
	r.mu.Unlock()
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	LastEdit     *discordgo.WebhookEdit
	LastFollowup *discordgo.WebhookParams
	Deferred     bool
	Err          error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}

// Defer records the deferral for testing.
func (m *MockResponder) Defer(ephemeral bool) error {
	m.Deferred = true
	return m.Err
}

// Edit records the edit for testing.
func (m *MockResponder) Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	m.LastEdit = edit
	return nil, m.Err
}

// Followup records the follow-up for testing.
func (m *MockResponder) Followup(ephemeral bool, params *discordgo.WebhookParams) (*discordgo.Message, error) {
	m.LastFollowup = params
	return nil, m.Err
}

// Acknowledged reports whether Respond or Defer was called.
func (m *MockResponder) Acknowledged() bool {
	return m.Deferred || m.LastResponse != nil
}
