// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the host logger. Debug output includes the execution
// faults and key waits logged by the machine and takes precedence over quiet,
// which only keeps errors.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachine creates the emulated machine configured with the named quirk
// profile and a random source seeded with the given seed.
func CreateMachine(logger *log.Logger, quirks string, seed uint64, observer chip8.Observer) (*chip8.Machine, error) {
	q, err := chip8.QuirksByName(quirks)
	if err != nil {
		return nil, fmt.Errorf("resolving quirks: %w", err)
	}

	opts := []chip8.Option{
		chip8.WithQuirks(q),
		chip8.WithRandom(chip8.NewRandom(seed)),
		chip8.WithLogger(logger),
	}
	if observer != nil {
		opts = append(opts, chip8.WithObserver(observer))
	}
	return chip8.New(opts...), nil
}
