package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/learnify/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "LEARNIFY_"

// parseEnv loads the dotenv file named by -e/-env when it exists, then
// overlays Config with LEARNIFY_* variables. Variables already set in the
// process environment win over the file. Panics on an unreadable file or a
// malformed duration.
func parseEnv(cfg *Config) {
	dotEnvPath := flagx.EnvFileFlags()
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			panic(err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString(&cfg.StorageDriver, os.Getenv(envPrefix+"STORAGE_DRIVER"))
	setString(&cfg.DatabaseDSN, os.Getenv(envPrefix+"DATABASE_DSN"))
	setString(&cfg.PasswordScheme, os.Getenv(envPrefix+"PASSWORD_SCHEME"))
	setString(&cfg.LogLevel, os.Getenv(envPrefix+"LOG_LEVEL"))

	if v := os.Getenv(envPrefix + "QUIZ_FEEDBACK_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.QuizFeedbackDelay = d
	}
}
