// Package config reads the process settings from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"chickenescape/internal/sim"

	"github.com/joho/godotenv"
)

// Frontend selects the host that drives the simulation.
type Frontend string

const (
	FrontendGL  Frontend = "gl"
	FrontendTTY Frontend = "tty"
)

// Config holds everything main needs to assemble the game.
type Config struct {
	Mode        sim.Mode
	Frontend    Frontend
	Seed        uint64
	TimeLimit   time.Duration // zero keeps the mode default
	MaxStep     time.Duration // zero disables the delta-time cap
	Assets      string // sprite directory; missing sprites fall back to flat shapes
	Mute        bool
	OverlayAddr string // empty disables the overlay server
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Mode:     sim.ModeSolo,
		Frontend: FrontendGL,
		MaxStep:  100 * time.Millisecond,
		Assets:   "assets",
	}
}

// Load merges the given .env files (or ./.env) into the environment and
// parses it. Missing files are fine; malformed ones are not.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv parses settings through lookup, which has the signature of
// os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("CHICKEN_MODE"); ok && v != "" {
		m, err := sim.ParseMode(v)
		if err != nil {
			return cfg, fmt.Errorf("CHICKEN_MODE: %w", err)
		}
		cfg.Mode = m
	}

	if v, ok := lookup("CHICKEN_FRONTEND"); ok && v != "" {
		switch f := Frontend(strings.ToLower(strings.TrimSpace(v))); f {
		case FrontendGL, FrontendTTY:
			cfg.Frontend = f
		default:
			return cfg, fmt.Errorf("CHICKEN_FRONTEND: unknown front end %q", v)
		}
	}

	if v, ok := lookup("CHICKEN_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("CHICKEN_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	var err error
	if cfg.TimeLimit, err = duration(lookup, "CHICKEN_TIME_LIMIT", cfg.TimeLimit); err != nil {
		return cfg, err
	}
	if cfg.MaxStep, err = duration(lookup, "CHICKEN_MAX_STEP", cfg.MaxStep); err != nil {
		return cfg, err
	}

	if v, ok := lookup("CHICKEN_ASSETS"); ok && v != "" {
		cfg.Assets = v
	}
	if v, ok := lookup("CHICKEN_MUTE"); ok && v != "" {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("CHICKEN_MUTE: %w", err)
		}
		cfg.Mute = mute
	}
	if v, ok := lookup("CHICKEN_OVERLAY_ADDR"); ok {
		cfg.OverlayAddr = strings.TrimSpace(v)
	}
	return cfg, nil
}

func duration(lookup func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return def, fmt.Errorf("%s: negative duration %s", key, v)
	}
	return d, nil
}

// Sim returns the simulation constants for the configured mode with the
// overrides applied.
func (c Config) Sim() sim.Config {
	sc := sim.DefaultConfig(c.Mode)
	if c.TimeLimit > 0 && sc.TimeLimit > 0 {
		sc.TimeLimit = c.TimeLimit
	}
	// Zero is meaningful here: it turns the delta-time cap off.
	sc.MaxStep = c.MaxStep
	return sc
}

// WorldSeed returns the configured seed, or one derived from the clock.
func (c Config) WorldSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
