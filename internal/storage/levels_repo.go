package storage

import (
	"context"
	"database/sql"
)

type LevelsRepo struct{ db *sql.DB }

func NewLevelsRepo(db *sql.DB) *LevelsRepo { return &LevelsRepo{db: db} }

// Get returns the user's leveling row, or a zero row if none exists.
func (r *LevelsRepo) Get(ctx context.Context, guildID, userID string) (LevelRow, error) {
	row := LevelRow{GuildID: guildID, UserID: userID}
	err := r.db.QueryRowContext(ctx, `
SELECT xp, level, messages, updated_at
  FROM levels
 WHERE guild_id = $1 AND user_id = $2
`, guildID, userID).Scan(&row.XP, &row.Level, &row.Messages, &row.UpdatedAt)
	if err == sql.ErrNoRows {
		return row, nil
	}
	if err != nil {
		return LevelRow{}, err
	}
	return row, nil
}

// AddXP adds xp to the user, stores the new level, and returns the row.
func (r *LevelsRepo) AddXP(ctx context.Context, guildID, userID string, xp int64, level int) (LevelRow, error) {
	row := LevelRow{GuildID: guildID, UserID: userID}
	err := r.db.QueryRowContext(ctx, `
INSERT INTO levels (guild_id, user_id, xp, level, messages)
VALUES ($1, $2, $3, $4, 1)
ON CONFLICT (guild_id, user_id) DO UPDATE SET
  xp         = levels.xp + EXCLUDED.xp,
  level      = GREATEST(levels.level, $4),
  messages   = levels.messages + 1,
  updated_at = NOW()
RETURNING xp, level, messages, updated_at
`, guildID, userID, xp, level).Scan(&row.XP, &row.Level, &row.Messages, &row.UpdatedAt)
	if err != nil {
		return LevelRow{}, err
	}
	return row, nil
}

// SetLevel overwrites the stored level after a recomputation.
func (r *LevelsRepo) SetLevel(ctx context.Context, guildID, userID string, level int) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE levels SET level = $3, updated_at = NOW()
 WHERE guild_id = $1 AND user_id = $2
`, guildID, userID, level)
	return err
}

// Rank returns the user's 1-based position in the guild by xp.
func (r *LevelsRepo) Rank(ctx context.Context, guildID, userID string) (int, error) {
	var rank int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) + 1
  FROM levels
 WHERE guild_id = $1
   AND xp > (SELECT xp FROM levels WHERE guild_id = $1 AND user_id = $2)
`, guildID, userID).Scan(&rank)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return rank, err
}

// Top returns the guild's top n rows by xp.
func (r *LevelsRepo) Top(ctx context.Context, guildID string, n int) ([]LevelRow, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, xp, level, messages, updated_at
  FROM levels
 WHERE guild_id = $1
 ORDER BY xp DESC
 LIMIT $2
`, guildID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LevelRow
	for rows.Next() {
		row := LevelRow{GuildID: guildID}
		if err := rows.Scan(&row.UserID, &row.XP, &row.Level, &row.Messages, &row.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
