package storage

import "time"

// GuildSettings is the per-guild configuration row. A default row is
// inserted on first read.
type GuildSettings struct {
	GuildID          string
	LogChannelID     string
	LevelingEnabled  bool
	XPRate           int
	TicketCategoryID string
	AuditEvents      []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GuildSettingsUpdate is a partial update; nil fields are left unchanged.
type GuildSettingsUpdate struct {
	LogChannelID     *string
	LevelingEnabled  *bool
	XPRate           *int
	TicketCategoryID *string
	AuditEvents      *[]string
}

// LevelRow is the per-guild per-user leveling state.
type LevelRow struct {
	GuildID   string
	UserID    string
	XP        int64
	Level     int
	Messages  int64
	UpdatedAt time.Time
}

// Infraction is one recorded moderation action.
type Infraction struct {
	ID          int64
	GuildID     string
	UserID      string
	ModeratorID string
	Kind        string
	Reason      string
	CreatedAt   time.Time
}

// Ticket is one support ticket and its backing channel.
type Ticket struct {
	ID        string
	GuildID   string
	UserID    string
	ChannelID string
	Subject   string
	Open      bool
	CreatedAt time.Time
	ClosedAt  *time.Time
}
