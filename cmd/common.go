package cmd

import (
	"fmt"
	"time"

	"github.com/alantheprice/promptline/pkg/configuration"
	"github.com/alantheprice/promptline/pkg/console"
	"github.com/alantheprice/promptline/pkg/utils"
	"github.com/spf13/cobra"
)

// sessionFlags holds the persistent flags that override the config file
var sessionFlags struct {
	prefix       string
	mode         string
	pollInterval time.Duration
	blocking     bool
	redirect     bool
	scanCodes    bool
}

// loadConfig reads the config file and layers environment and flags on top
func loadConfig(cmd *cobra.Command) (*configuration.Config, error) {
	cfg, err := configuration.Load()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.Prefix = sessionFlags.prefix
	}
	if flags.Changed("mode") {
		cfg.Mode = sessionFlags.mode
	}
	if flags.Changed("poll-interval") {
		cfg.PollIntervalMs = int(sessionFlags.pollInterval / time.Millisecond)
	}
	if flags.Changed("blocking") {
		cfg.BlockingInput = sessionFlags.blocking
	}
	if flags.Changed("redirect") {
		cfg.RedirectStdStreams = sessionFlags.redirect
	}
	if flags.Changed("scan-codes") {
		cfg.ScanCodes = sessionFlags.scanCodes
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSession builds a console session on the process terminal
func newSession(cfg *configuration.Config) (*console.Session, console.Mode, error) {
	mode, err := console.ParseMode(cfg.Mode)
	if err != nil {
		return nil, mode, err
	}

	logger := utils.GetLogger()
	if cfg.LogFile != "" {
		if err := logger.SetOutputFile(cfg.LogFile); err != nil {
			logger.LogError(fmt.Errorf("failed to close previous log file: %w", err))
		}
	}

	session := console.NewSession(console.SessionConfig{
		Logger:             logger,
		PollInterval:       cfg.PollInterval(),
		BlockingReads:      cfg.BlockingInput,
		RedirectStdStreams: cfg.RedirectStdStreams,
		ScanCodes:          cfg.ScanCodes,
		Prefix:             cfg.Prefix,
	})
	return session, mode, nil
}
