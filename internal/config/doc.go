// Package config loads runtime configuration for the Learnify client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables LEARNIFY_*, optionally seeded from a dotenv file
//     (see parseEnv) selected via -e or -env, ".env" by default.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   storage driver (sqlite, postgres, memory)
//	-dsn string database file name or connection string
//	-p string   password scheme (plain, bcrypt, argon2)
//	-q int      quiz feedback delay (milliseconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "900ms" or
// integer nanoseconds:
//
//	{
//	  "storage_driver": "postgres",
//	  "database_dsn": "postgres://learnify@localhost/learnify",
//	  "password_scheme": "bcrypt",
//	  "quiz_feedback_delay": "1s",
//	  "log_level": "debug"
//	}
//
// # Environment
//
//	LEARNIFY_STORAGE_DRIVER, LEARNIFY_DATABASE_DSN, LEARNIFY_PASSWORD_SCHEME,
//	LEARNIFY_QUIZ_FEEDBACK_DELAY (Go duration), LEARNIFY_LOG_LEVEL
package config
