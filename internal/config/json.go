package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/learnify/internal/flagx"
	"github.com/dmitrijs2005/learnify/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	StorageDriver     string         `json:"storage_driver"`
	DatabaseDSN       string         `json:"database_dsn"`
	PasswordScheme    string         `json:"password_scheme"`
	QuizFeedbackDelay timex.Duration `json:"quiz_feedback_delay"`
	LogLevel          string         `json:"log_level"`
}

// parseJson overlays Config with the fields present in the JSON file named
// by -c/-config. Absent fields keep their previous values. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.PasswordScheme, jc.PasswordScheme)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.QuizFeedbackDelay.Duration > 0 {
		cfg.QuizFeedbackDelay = jc.QuizFeedbackDelay.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
