package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/learnify/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-d string   storage driver
//	-dsn string database file name or connection string
//	-p string   password scheme
//	-q int      quiz feedback delay in milliseconds
//	-l string   log level
//
// Only the flags above are parsed; the rest of os.Args is filtered out with
// flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-dsn", "-p", "-q", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver (sqlite, postgres, memory)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database file name or connection string")
	fs.StringVar(&cfg.PasswordScheme, "p", cfg.PasswordScheme, "password scheme (plain, bcrypt, argon2)")
	delay := fs.Int("q", int(cfg.QuizFeedbackDelay.Milliseconds()), "quiz feedback delay (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.QuizFeedbackDelay = time.Duration(*delay) * time.Millisecond
}
