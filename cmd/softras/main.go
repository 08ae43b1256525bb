// Package main is the entry point for the softras viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/softras/internal/assets"
	"github.com/Faultbox/softras/internal/config"
	"github.com/Faultbox/softras/internal/logger"
	"github.com/Faultbox/softras/internal/viewer"
)

// defaultFrames is the headless frame count when -frames is not given.
const defaultFrames = 60

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== softras ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	am := assets.NewManager(logger.Named("assets"), cfg.Assets.Paths...)
	defer am.Close()

	scene, err := viewer.NewScene(cfg, am, logger.Named("scene"))
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	if config.Headless() {
		frames := config.Frames()
		if frames <= 0 {
			frames = defaultFrames
		}
		_, err := viewer.RunHeadless(scene, frames, logger.Named("headless"))
		return err
	}

	v, err := viewer.New(cfg, scene, logger.Named("viewer"))
	if err != nil {
		return err
	}
	defer v.Close()
	return v.Run()
}
