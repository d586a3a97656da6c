package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds the structured logger for a front-end. Level and format
// come from INVADERS_LOG_LEVEL and INVADERS_LOG_FORMAT (text, json, logfmt).
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level := log.InfoLevel
	if raw := GetEnv(EnvLogLevel, ""); raw != "" {
		l, err := log.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		level = l
	}

	var formatter log.Formatter
	switch f := strings.ToLower(GetEnv(EnvLogFormat, "text")); f {
	case "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("%s: unknown format %q", EnvLogFormat, f)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// LogOutput opens the file named by INVADERS_LOG_FILE for appending. With the
// variable unset, logs are discarded so they never mix with the game screen.
// The close function is non-nil whenever err is nil.
func LogOutput() (io.Writer, func() error, error) {
	path := GetEnv(EnvLogFile, "")
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
