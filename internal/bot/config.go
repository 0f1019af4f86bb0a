package bot

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken string   `env:"DISCORD_TOKEN,notEmpty"`
	DatabaseURL  string   `env:"DATABASE_URL,notEmpty"`
	DeveloperIDs []string `env:"DEVELOPER_IDS" envSeparator:","`

	// GuildID scopes command registration to a single guild when set.
	// Empty registers commands globally.
	GuildID string `env:"DISCORD_GUILD_ID"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDeveloper reports whether the given user ID is in the developer
// allow-list.
func (c *Config) IsDeveloper(userID string) bool {
	for _, id := range c.DeveloperIDs {
		if id == userID {
			return true
		}
	}
	return false
}
