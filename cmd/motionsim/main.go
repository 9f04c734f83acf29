// Package main runs a movement script against the avatar without a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/arena"
	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/sim"
)

var flagScript = flag.String("script", "scripts/tour.yaml", "Movement script to run")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.InitLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	script, err := sim.LoadScript(*flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Script error: %v\n", err)
		os.Exit(1)
	}

	levelName := cfg.Sim.Level
	if script.Level != "" {
		levelName = script.Level
	}
	level, err := arena.LoadLevel(levelName)
	if err != nil {
		logger.Error("failed to load level", zap.String("level", levelName), zap.Error(err))
		os.Exit(1)
	}

	runner, err := sim.NewRunner(cfg, arena.NewWorld(level, cfg.Prop))
	if err != nil {
		logger.Error("failed to create avatar", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("running script",
		zap.String("script", script.Name),
		zap.String("level", level.Name),
		zap.Int("ticks", script.TotalTicks()),
	)
	rep := runner.Run(script)

	for _, tr := range rep.Transitions {
		fmt.Printf("%6d  %-15s -> %s\n", tr.Tick, tr.From, tr.To)
	}
	fmt.Printf("final: %s at (%.2f, %.2f, %.2f) after %d ticks, %d clip changes\n",
		rep.Final, rep.Position.X, rep.Position.Y, rep.Position.Z, rep.Ticks, rep.Clips)
	for _, name := range rep.Broken {
		fmt.Printf("broken: %s\n", name)
	}
}
