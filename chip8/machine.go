package chip8

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory and machine layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000
	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1
	// ProgramStart is the memory address where ROMs are loaded and
	// execution begins.
	ProgramStart = 0x200
	// MaxROMSize is the largest ROM that fits into program memory.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16
	// StackSize is the number of return addresses the stack can hold.
	StackSize = 16
	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16

	// VF is the index of the flag register.
	VF = 0xF

	// opcodeSize is the size of CHIP-8 instructions in bytes.
	opcodeSize = 2
)

// Option configures a Machine.
type Option func(*Machine)

// WithQuirks sets the interpreter quirks. The default is QuirksModern.
func WithQuirks(q Quirks) Option {
	return func(m *Machine) { m.quirks = q }
}

// WithRandom sets the random source used by the RND instruction. Inject a
// seeded source to make runs reproducible.
func WithRandom(r Random) Option {
	return func(m *Machine) { m.random = r }
}

// WithObserver sets an observer that is notified about display and sound
// state changes.
func WithObserver(o Observer) Option {
	return func(m *Machine) { m.observer = o }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// Machine is the complete state of an emulated CHIP-8 system. It is not safe
// for concurrent use.
type Machine struct {
	memory    [MemorySize]byte
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16
	stack     [StackSize]uint16
	sp        int

	delayTimer uint8
	soundTimer uint8

	display Framebuffer
	keys    [KeyCount]bool

	awaitingKey bool
	awaitingReg uint8

	cycles uint64

	quirks   Quirks
	random   Random
	observer Observer
	logger   *log.Logger
}

// New returns a new machine in its power-on state, with the font loaded and
// an empty program memory.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}

	if m.random == nil {
		m.random = NewRandom(rand.Uint64())
	}
	if m.observer == nil {
		m.observer = nopObserver{}
	}
	if m.logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		m.logger = log.NewWithConfig(cfg)
	}

	m.Reset()
	return m
}

// Reset reinitializes the complete machine state. Memory is cleared apart
// from the font, configuration options are kept.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], font[:])
	m.registers = [RegisterCount]uint8{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.display.Clear()
	m.keys = [KeyCount]bool{}
	m.awaitingKey = false
	m.awaitingReg = 0
	m.cycles = 0

	if m.delayTimer != 0 || m.soundTimer != 0 {
		m.delayTimer = 0
		m.setSoundTimer(0)
	}
}

// LoadROM resets the machine and copies the ROM into memory at ProgramStart.
// The machine is not modified if the ROM does not fit.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes exceeds the maximum of %d bytes", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	m.Reset()
	copy(m.memory[ProgramStart:], rom)

	m.logger.Debug("ROM loaded",
		log.Int("size", len(rom)),
		log.Hex("address", uint16(ProgramStart)))
	return nil
}

// Quirks returns the active interpreter quirks.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of register Vx, x is taken modulo 16.
func (m *Machine) Register(x uint8) uint8 {
	return m.registers[x&0xF]
}

// Registers returns a copy of the registers V0-VF.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.registers
}

// Stack returns a copy of the return addresses on the stack, the most recently
// pushed address last.
func (m *Machine) Stack() []uint16 {
	s := make([]uint16, m.sp)
	copy(s, m.stack[:m.sp])
	return s
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, &MemoryOutOfBoundsError{Address: int(address)}
	}
	return m.memory[address], nil
}

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the sound timer value. A host should sound a tone while
// it is not zero.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// Display returns the framebuffer. It must only be read by the host.
func (m *Machine) Display() *Framebuffer {
	return &m.display
}

// Pixel returns whether the display pixel at the given position is lit.
func (m *Machine) Pixel(x, y int) bool {
	return m.display.Pixel(x, y)
}

// Cycles returns the number of instructions executed since the last reset.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// String returns a one line summary of the CPU state.
func (m *Machine) String() string {
	return fmt.Sprintf("PC %04X SP %02X I %04X regs % X", m.pc, m.sp, m.index, m.registers[:])
}

func (m *Machine) setSoundTimer(value uint8) {
	wasActive := m.soundTimer > 0
	m.soundTimer = value
	if active := value > 0; active != wasActive {
		m.observer.SoundChanged(active)
	}
}
