package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type SettingsRepo struct{ db *sql.DB }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the guild's settings, inserting a default row on first read.
func (r *SettingsRepo) Get(ctx context.Context, guildID string) (GuildSettings, error) {
	var (
		s      GuildSettings
		events string
	)
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, log_channel_id, leveling_enabled, xp_rate, ticket_category_id, audit_events, created_at, updated_at
  FROM guild_settings
 WHERE guild_id = $1
`, guildID).Scan(
		&s.GuildID, &s.LogChannelID, &s.LevelingEnabled, &s.XPRate, &s.TicketCategoryID, &events, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO guild_settings (guild_id) VALUES ($1) ON CONFLICT (guild_id) DO NOTHING
`, guildID)
		if err != nil {
			return GuildSettings{}, err
		}
		return r.Get(ctx, guildID)
	}
	if err != nil {
		return GuildSettings{}, err
	}
	s.AuditEvents = splitEvents(events)
	return s, nil
}

// Update applies the non-nil fields of u and returns the resulting row.
func (r *SettingsRepo) Update(ctx context.Context, guildID string, u GuildSettingsUpdate) (GuildSettings, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	i := 1

	if u.LogChannelID != nil {
		sets = append(sets, fmt.Sprintf("log_channel_id = $%d", i))
		args = append(args, *u.LogChannelID)
		i++
	}
	if u.LevelingEnabled != nil {
		sets = append(sets, fmt.Sprintf("leveling_enabled = $%d", i))
		args = append(args, *u.LevelingEnabled)
		i++
	}
	if u.XPRate != nil {
		sets = append(sets, fmt.Sprintf("xp_rate = $%d", i))
		args = append(args, *u.XPRate)
		i++
	}
	if u.TicketCategoryID != nil {
		sets = append(sets, fmt.Sprintf("ticket_category_id = $%d", i))
		args = append(args, *u.TicketCategoryID)
		i++
	}
	if u.AuditEvents != nil {
		sets = append(sets, fmt.Sprintf("audit_events = $%d", i))
		args = append(args, strings.Join(*u.AuditEvents, ","))
		i++
	}
	if len(sets) == 0 {
		return r.Get(ctx, guildID)
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", i))
	args = append(args, time.Now())
	i++

	args = append(args, guildID)

	// Ensure the row exists before patching it.
	if _, err := r.Get(ctx, guildID); err != nil {
		return GuildSettings{}, err
	}

	_, err := r.db.ExecContext(ctx, `
UPDATE guild_settings
   SET `+strings.Join(sets, ", ")+`
 WHERE guild_id = $`+fmt.Sprint(i), args...)
	if err != nil {
		return GuildSettings{}, err
	}
	return r.Get(ctx, guildID)
}

func splitEvents(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
