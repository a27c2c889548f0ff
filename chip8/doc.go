// Package chip8 implements a CHIP-8 virtual machine core.
//
// # Overview
//
// The core owns the complete emulated machine state and advances it one
// instruction at a time. It has no knowledge of rendering, audio, keyboards,
// files or wall clock time; a host drives it through a small set of calls.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x1FF: Interpreter area, the hex font lives at FontAddress (0x050)
//   - ProgramStart-MaxAddress: ROM image and program data
//
// # Machine State
//
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as the
//     carry, borrow and collision flag
//   - 12-bit index register I and the program counter
//   - a 16 entry return address stack
//   - delay and sound timers, decremented by TickTimers at 60Hz
//   - a 64x32 monochrome framebuffer and 16 key input latch
//
// # Driving The Core
//
// A host typically does:
//
//	m := chip8.New(chip8.WithRandom(rng))
//	if err := m.LoadROM(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for each 60Hz frame {
//		for i := 0; i < instructionsPerFrame; i++ {
//			drawn, err := m.Step()
//			...
//		}
//		m.TickTimers()
//	}
//
// Key waits (FX0A) are a state and not a blocking call: while AwaitingKey
// reports true, Step is a no-op until the host calls ReportKeyPressed. The
// program counter stays on the FX0A instruction during the wait.
//
// # Quirks
//
// Historic interpreters disagree on a few opcodes. The behavior is selected
// with the Quirks option, QuirksModern is used by default.
package chip8
