// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/set"
)

var errorPolicies = func() set.Set[string] {
	s := set.New[string]()
	s.Add(options.ErrorPolicyHalt)
	s.Add(options.ErrorPolicyContinue)
	return s
}()

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Emulator{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Emulator{}, err
	}

	opts.Input = args[0]
	return opts, options.NewEmulator(opts), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Quirks = strings.ToLower(opts.Quirks)
	if _, err := chip8.QuirksByName(opts.Quirks); err != nil {
		return err
	}

	opts.ErrorPolicy = strings.ToLower(opts.ErrorPolicy)
	if !errorPolicies.Contains(opts.ErrorPolicy) {
		return fmt.Errorf("unsupported error policy: %s. Valid options: %s, %s",
			opts.ErrorPolicy, options.ErrorPolicyHalt, options.ErrorPolicyContinue)
	}

	if opts.Cycles < 0 {
		return fmt.Errorf("invalid cycle count %d", opts.Cycles)
	}
	if opts.InstructionsPerFrame < 1 {
		return fmt.Errorf("invalid instructions per frame %d", opts.InstructionsPerFrame)
	}
	if opts.Key < -1 || opts.Key >= chip8.KeyCount {
		return fmt.Errorf("invalid key %d, valid keys are 0-15 or -1 to disable", opts.Key)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the file to write the final frame to, printed on console if no name given")
	flags.StringVar(&opts.Quirks, "quirks", options.DefaultQuirks,
		"interpreter quirk profile ("+strings.Join(chip8.QuirkProfileNames(), "/")+")")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultCycles, "number of instructions to execute, 0 runs until interrupted")
	flags.IntVar(&opts.InstructionsPerFrame, "ipf", options.DefaultInstructionsPerFrame, "instructions executed per 60Hz timer frame")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator")
	flags.IntVar(&opts.Key, "key", -1, "key code 0-15 to report when the program waits for a key, -1 disables")
	flags.StringVar(&opts.ErrorPolicy, "on-error", options.ErrorPolicyHalt, "behavior on execution faults (halt/continue)")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace the emulation at 60 frames per second")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
