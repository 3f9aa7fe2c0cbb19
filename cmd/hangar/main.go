// Package main is the entry point for the hangar airplane viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/hangar/internal/app"
	"github.com/Faultbox/hangar/internal/config"
	"github.com/Faultbox/hangar/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	logger.Info("=== hangar ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if path, err := config.Bootstrap(); err != nil {
		logger.Warn("no config file to edit", zap.Error(err))
	} else if path != "" {
		logger.Info("wrote default config", zap.String("path", path))
	}

	a, err := app.New(cfg, logger.Log)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
