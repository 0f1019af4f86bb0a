package storage

import (
	"context"
	"database/sql"
)

type InfractionsRepo struct{ db *sql.DB }

func NewInfractionsRepo(db *sql.DB) *InfractionsRepo { return &InfractionsRepo{db: db} }

// Add records a moderation action and returns its assigned ID.
func (r *InfractionsRepo) Add(ctx context.Context, inf Infraction) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO infractions (guild_id, user_id, moderator_id, kind, reason)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, inf.GuildID, inf.UserID, inf.ModeratorID, inf.Kind, inf.Reason).Scan(&id)
	return id, err
}

// ListByUser returns the user's infractions, newest first.
func (r *InfractionsRepo) ListByUser(ctx context.Context, guildID, userID string, limit int) ([]Infraction, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, guild_id, user_id, moderator_id, kind, reason, created_at
  FROM infractions
 WHERE guild_id = $1 AND user_id = $2
 ORDER BY created_at DESC
 LIMIT $3
`, guildID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Infraction
	for rows.Next() {
		var inf Infraction
		if err := rows.Scan(&inf.ID, &inf.GuildID, &inf.UserID, &inf.ModeratorID, &inf.Kind, &inf.Reason, &inf.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, inf)
	}
	return out, rows.Err()
}

// Delete removes one infraction by ID, scoped to the guild.
func (r *InfractionsRepo) Delete(ctx context.Context, guildID string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM infractions WHERE guild_id = $1 AND id = $2
`, guildID, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
