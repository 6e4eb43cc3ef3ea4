package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Options are the environment-resolved settings. The dashboard takes no CLI
// flags; credentials and region come from the ambient AWS chain.
type Options struct {
	RefreshInterval time.Duration
	LogPath         string
}

const (
	envRefreshSeconds = "SQS_MONITOR_REFRESH"
	envLogPath        = "SQS_MONITOR_LOG"
)

// OptionsFromEnv reads the optional overrides. Unset, unparseable, or
// non-positive refresh values fall back to the 30s default.
func OptionsFromEnv() Options {
	opts := Options{
		RefreshInterval: defaultRefreshInterval,
		LogPath:         strings.TrimSpace(os.Getenv(envLogPath)),
	}
	raw := strings.TrimSpace(os.Getenv(envRefreshSeconds))
	if raw == "" {
		return opts
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return opts
	}
	opts.RefreshInterval = time.Duration(seconds) * time.Second
	return opts
}
