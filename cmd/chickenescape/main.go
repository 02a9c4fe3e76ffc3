// Command chickenescape runs the game in a desktop window or a terminal.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"chickenescape/internal/config"
	"chickenescape/internal/game"
	"chickenescape/internal/overlay"
	"chickenescape/internal/sim"
	"chickenescape/internal/tty"
	"chickenescape/pkg/logger"
)

// GLFW must run on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	cfg, err := config.Load()
	// Load has already merged .env, so LOG_* settings from it apply.
	logger.Init(err == nil && cfg.Frontend == config.FrontendTTY)
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid configuration")
	}

	// Pin the seed so every world of this run, and the log line, agree.
	cfg.Seed = cfg.WorldSeed()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub sim.Publisher
	var wg sync.WaitGroup
	if cfg.OverlayAddr != "" {
		hub := overlay.NewHub(30)
		srv := overlay.NewServer(cfg.OverlayAddr, hub)
		pub = hub
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Log.WithError(err).Error("overlay server stopped")
			}
		}()
	}

	logger.Log.WithField("mode", cfg.Mode.String()).
		WithField("frontend", string(cfg.Frontend)).
		WithField("seed", cfg.Seed).
		Info("starting")

	switch cfg.Frontend {
	case config.FrontendTTY:
		err = tty.Run(ctx, cfg, pub)
	default:
		err = game.RunDesktop(ctx, cfg, pub)
	}
	stop()
	wg.Wait()
	if err != nil {
		if cfg.Frontend == config.FrontendTTY && os.Getenv("LOG_FILE") == "" {
			// The screen has been released; report on the terminal.
			logger.Log.SetOutput(os.Stderr)
		}
		logger.Log.WithError(err).Fatal("game exited")
	}
}
