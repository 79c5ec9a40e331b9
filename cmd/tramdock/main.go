// Package main is the entry point for the tram dock demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/config"
	"github.com/Faultbox/tramdock/internal/game"
	"github.com/Faultbox/tramdock/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	opts := logger.Options{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.FileConfig{
			Path:       cfg.Logging.LogFile,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		}
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tram Dock ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	runErr := g.Run()
	g.Close()
	if runErr != nil {
		logger.Error("game error", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
