package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"tilt-maze/internal/config"
	"tilt-maze/internal/logger"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogPath)
	log.Verbose = cfg.Debug
	if cfg.Surface == config.SurfaceRaylib {
		log.Mirror = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	log.Infof("starting: input %s, surface %s, debug %t", cfg.Input, cfg.Surface, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := newApp(cfg, log)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	defer a.close()

	if err := a.startPose(ctx); err != nil {
		log.Errorf("%v", err)
		return err
	}
	a.watchStage(ctx)

	if cfg.Surface == config.SurfaceTerm {
		return a.runTerm(ctx)
	}
	a.runWindow(ctx)
	return nil
}

// loadConfig layers config/game.yaml, .env, TILTMAZE_* variables and command line flags.
func loadConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	path := fs.String("config", config.DefaultPath, "config file")
	stagePath := fs.String("stage", "", "stage file (embedded default when empty)")
	input := fs.String("input", "", "input mode: keyboard, pose or both")
	surface := fs.String("surface", "", "render surface: raylib or term")
	debug := fs.Bool("debug", false, "debug mode: wireframes, free camera, keyboard control")
	poseAddr := fs.String("pose-addr", "", "listen address of the pose websocket")
	recording := fs.String("recording", "", "replay poses from a recording instead of the websocket")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	if err := config.LoadEnv(".env"); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(*path)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stage":
			cfg.Stage = *stagePath
		case "input":
			cfg.Input = *input
		case "surface":
			cfg.Surface = *surface
		case "debug":
			cfg.Debug = *debug
		case "pose-addr":
			cfg.Pose.Addr = *poseAddr
		case "recording":
			cfg.Pose.Recording = *recording
		}
	})
	return cfg, cfg.Validate()
}
