package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

type TicketsRepo struct{ db *sql.DB }

func NewTicketsRepo(db *sql.DB) *TicketsRepo { return &TicketsRepo{db: db} }

// Create stores a newly opened ticket.
func (r *TicketsRepo) Create(ctx context.Context, t Ticket) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO tickets (id, guild_id, user_id, channel_id, subject, open)
VALUES ($1, $2, $3, $4, $5, TRUE)
`, t.ID, t.GuildID, t.UserID, t.ChannelID, t.Subject)
	return err
}

// GetByChannel returns the ticket backed by the given channel.
func (r *TicketsRepo) GetByChannel(ctx context.Context, channelID string) (Ticket, error) {
	var t Ticket
	var closedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, guild_id, user_id, channel_id, subject, open, created_at, closed_at
  FROM tickets
 WHERE channel_id = $1
`, channelID).Scan(&t.ID, &t.GuildID, &t.UserID, &t.ChannelID, &t.Subject, &t.Open, &t.CreatedAt, &closedAt)
	if err == sql.ErrNoRows {
		return Ticket{}, ErrNotFound
	}
	if err != nil {
		return Ticket{}, err
	}
	if closedAt.Valid {
		t.ClosedAt = &closedAt.Time
	}
	return t, nil
}

// CountOpenByUser returns how many tickets the user has open in the guild.
func (r *TicketsRepo) CountOpenByUser(ctx context.Context, guildID, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM tickets WHERE guild_id = $1 AND user_id = $2 AND open
`, guildID, userID).Scan(&n)
	return n, err
}

// Close marks the ticket closed.
func (r *TicketsRepo) Close(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE tickets SET open = FALSE, closed_at = $2 WHERE id = $1
`, id, time.Now())
	return err
}
