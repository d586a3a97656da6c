// Package config provides shared configuration: environment lookup and
// the gameplay tuning document.
package config

import "os"

// Environment variables read by the front-ends.
const (
	EnvTuningPath = "INVADERS_TUNING"
	EnvLogLevel   = "INVADERS_LOG_LEVEL"
	EnvLogFormat  = "INVADERS_LOG_FORMAT"
	EnvLogFile    = "INVADERS_LOG_FILE"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// TuningFromEnv loads the tuning file named by INVADERS_TUNING, or the
// defaults when the variable is unset or empty.
func TuningFromEnv() (Tuning, error) {
	path := GetEnv(EnvTuningPath, "")
	if path == "" {
		return DefaultTuning(), nil
	}
	return LoadTuning(path)
}
