// Package options contains the program options.
package options

import (
	"strings"

	"github.com/retroenv/retrogolib/arch"
)

// Error policies of the emulation loop.
const (
	ErrorPolicyHalt     = "halt"
	ErrorPolicyContinue = "continue"
)

// Default emulation settings.
const (
	DefaultCycles               = 6000
	DefaultInstructionsPerFrame = 11
	DefaultQuirks               = "modern"
)

// Program options of the emulator host.
type Program struct {
	Input  string // ROM file to run
	Output string // file to write the final frame to, console if empty

	Quirks               string // quirk profile name
	Cycles               int    // instructions to execute, 0 runs until cancelled
	InstructionsPerFrame int    // instructions executed per 60Hz frame
	Seed                 uint64 // random source seed
	Key                  int    // key reported on key waits, -1 disables
	ErrorPolicy          string // halt or continue on execution faults

	Realtime bool // pace frames with the timer frequency
	Debug    bool
	Quiet    bool
}

// Emulator defines options to control the emulation loop.
type Emulator struct {
	System arch.System

	Cycles               int
	InstructionsPerFrame int
	Seed                 uint64
	Key                  int
	HaltOnError          bool
	Realtime             bool
}

// NewEmulator returns the emulation loop options for the program options.
func NewEmulator(opts Program) Emulator {
	return Emulator{
		System: arch.CHIP8System,

		Cycles:               opts.Cycles,
		InstructionsPerFrame: opts.InstructionsPerFrame,
		Seed:                 opts.Seed,
		Key:                  opts.Key,
		HaltOnError:          strings.ToLower(opts.ErrorPolicy) != ErrorPolicyContinue,
		Realtime:             opts.Realtime,
	}
}
