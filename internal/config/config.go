package config

import "time"

// Config holds runtime settings for the Learnify terminal client.
//
// Fields:
//   - StorageDriver: "sqlite", "postgres" or "memory".
//   - DatabaseDSN: SQLite file name or PostgreSQL connection string.
//   - PasswordScheme: "plain", "bcrypt" or "argon2".
//   - QuizFeedbackDelay: pause between an answer and the next question.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	StorageDriver     string
	DatabaseDSN       string
	PasswordScheme    string
	QuizFeedbackDelay time.Duration
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.DatabaseDSN = "learnify.db"
	c.PasswordScheme = "plain"
	c.QuizFeedbackDelay = 900 * time.Millisecond
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
