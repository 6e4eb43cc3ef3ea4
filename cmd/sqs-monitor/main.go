package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/isbhargav/sqs-monitor/internal/app"
	"github.com/isbhargav/sqs-monitor/internal/sqs"
)

func main() {
	opts := app.OptionsFromEnv()

	logger, closeLog, err := newLogger(opts.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	cfg, err := config.LoadDefaultConfig(startupCtx)
	if err != nil {
		logger.Error().Err(err).Msg("AWS configuration failed")
		fmt.Fprintf(os.Stderr, "failed to load AWS configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Info().Str("region", cfg.Region).Dur("refresh_interval", opts.RefreshInterval).Msg("starting")

	client := sqs.New(awssqs.NewFromConfig(cfg), logger)
	program := tea.NewProgram(app.NewModel(client, logger, opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error().Err(err).Msg("program failed")
		fmt.Fprintf(os.Stderr, "sqs-monitor failed: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a file-backed zerolog logger, or a no-op logger when no
// path is configured. The TUI owns the terminal, so nothing logs to stdout.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}
