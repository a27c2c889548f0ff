// Package runner implements the emulation loop of the host.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Result contains the statistics of an emulation run.
type Result struct {
	Steps   int // Step calls including idle ones during key waits
	Frames  int // 60Hz timer frames
	Draws   int // instructions that modified the display
	Faults  int // execution faults that were skipped
	Beeping int // frames with an active sound timer
}

// RunFile handles the complete ROM processing workflow: load, emulate and
// write the final display state.
func RunFile(ctx context.Context, logger *log.Logger, opts options.Program, emuOpts options.Emulator) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	events := &eventLogger{logger: logger}
	m, err := config.CreateMachine(logger, opts.Quirks, emuOpts.Seed, events)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}
	if err := m.LoadROM(rom); err != nil {
		return fmt.Errorf("loading rom into memory: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Running CHIP-8 ROM",
			log.String("file", opts.Input),
			log.String("system", string(emuOpts.System)),
			log.String("quirks", opts.Quirks),
			log.Int("size", len(rom)))
	}

	res, runErr := Emulate(ctx, logger, m, emuOpts)
	logger.Debug("Emulation stopped",
		log.Int("steps", res.Steps),
		log.Int("frames", res.Frames),
		log.Int("display_updates", events.updates),
		log.Int("beeping_frames", res.Beeping))

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	if err := WriteReport(writer, m, res); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return runErr
}

// Emulate runs the machine with the configured number of instructions per
// 60Hz frame, ticking the timers once per frame. It stops after the
// configured number of steps, on context cancellation or, if the halt policy
// is set, on the first execution fault. A failed opcode fetch always stops
// the emulation.
func Emulate(ctx context.Context, logger *log.Logger, m *chip8.Machine, opts options.Emulator) (Result, error) {
	var res Result

	var tick <-chan time.Time
	if opts.Realtime {
		ticker := time.NewTicker(time.Second / chip8.TimerFrequency)
		defer ticker.Stop()
		tick = ticker.C
	}

	for opts.Cycles == 0 || res.Steps < opts.Cycles {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if err := runFrame(logger, m, opts, &res); err != nil {
			return res, err
		}

		m.TickTimers()
		res.Frames++
		if m.SoundActive() {
			res.Beeping++
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-tick:
			}
		}
	}
	return res, nil
}

func runFrame(logger *log.Logger, m *chip8.Machine, opts options.Emulator, res *Result) error {
	for i := 0; i < opts.InstructionsPerFrame; i++ {
		if opts.Cycles > 0 && res.Steps >= opts.Cycles {
			return nil
		}
		res.Steps++

		if m.AwaitingKey() && opts.Key >= 0 {
			m.ReportKeyPressed(uint8(opts.Key))
		}

		pc := m.PC()
		drawn, err := m.Step()
		if drawn {
			res.Draws++
		}
		if err == nil {
			continue
		}

		var oob *chip8.MemoryOutOfBoundsError
		if opts.HaltOnError || (errors.As(err, &oob) && oob.Fetch) {
			return fmt.Errorf("executing instruction at address %03X: %w", pc, err)
		}
		logger.Warn("Skipping faulty instruction",
			log.Hex("address", pc),
			log.Err(err))
		m.SkipInstruction()
		res.Faults++
	}
	return nil
}

// WriteReport writes the display content and final machine state.
func WriteReport(w io.Writer, m *chip8.Machine, res Result) error {
	var sb strings.Builder
	sb.WriteString(m.Display().String())
	fmt.Fprintf(&sb, "\n%s\n", m.String())
	fmt.Fprintf(&sb, "cycles %d steps %d frames %d draws %d faults %d\n",
		m.Cycles(), res.Steps, res.Frames, res.Draws, res.Faults)

	_, err := io.WriteString(w, sb.String())
	return err
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// eventLogger logs sound state changes and counts display updates.
type eventLogger struct {
	logger  *log.Logger
	updates int
}

func (e *eventLogger) DisplayChanged(*chip8.Framebuffer) {
	e.updates++
}

func (e *eventLogger) SoundChanged(active bool) {
	if active {
		e.logger.Debug("Sound on")
	} else {
		e.logger.Debug("Sound off")
	}
}
