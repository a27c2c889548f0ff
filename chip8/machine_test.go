package chip8

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Empty(t, m.Stack())
	assert.Equal(t, QuirksModern, m.Quirks())
	assert.Equal(t, font[:], m.memory[FontAddress:FontAddress+len(font)])
	assert.Equal(t, 0, m.Display().Lit())
	assert.False(t, m.AwaitingKey())
}

func TestLoadROM(t *testing.T) {
	m := New()
	rom := []byte{0x60, 0x05, 0x61, 0x05}

	assert.NoError(t, m.LoadROM(rom))
	for i, b := range rom {
		value, err := m.ReadMemory(uint16(ProgramStart + i))
		assert.NoError(t, err)
		assert.Equal(t, b, value)
	}
}

func TestLoadROM_MaximumSize(t *testing.T) {
	m := New()
	rom := make([]byte, MaxROMSize)
	rom[len(rom)-1] = 0xAB

	assert.NoError(t, m.LoadROM(rom))
	value, err := m.ReadMemory(MaxAddress)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), value)
}

func TestLoadROM_TooLarge(t *testing.T) {
	m := New()
	assert.NoError(t, m.LoadROM([]byte{0x12, 0x34}))
	m.registers[3] = 0x99

	err := m.LoadROM(make([]byte, MaxROMSize+1))
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.Equal(t, uint8(0x99), m.Register(3))
	value, _ := m.ReadMemory(ProgramStart)
	assert.Equal(t, byte(0x12), value)
}

func TestLoadROM_ResetsState(t *testing.T) {
	m := newTestMachine(t, 0x2206, 0x0000, 0x0000, 0x6305, 0xF30A)
	m.display.DrawSprite(0, 0, []byte{0xFF}, false)
	m.delayTimer = 10
	m.SetKey(2, true)
	step(t, m, 3)
	assert.True(t, m.AwaitingKey())

	assert.NoError(t, m.LoadROM([]byte{0x00, 0xE0}))

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, [RegisterCount]uint8{}, m.Registers())
	assert.Empty(t, m.Stack())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, 0, m.Display().Lit())
	assert.False(t, m.KeyPressed(2))
	assert.False(t, m.AwaitingKey())
	assert.Equal(t, uint64(0), m.Cycles())
	value, _ := m.ReadMemory(0x206)
	assert.Equal(t, byte(0), value)
}

func TestReadMemory_OutOfBounds(t *testing.T) {
	m := New()

	_, err := m.ReadMemory(MemorySize)
	var oob *MemoryOutOfBoundsError
	assert.True(t, errors.As(err, &oob))
	assert.Equal(t, MemorySize, oob.Address)
}

func TestSetKey(t *testing.T) {
	m := New()

	m.SetKey(0xF, true)
	assert.True(t, m.KeyPressed(0xF))
	m.SetKey(0xF, false)
	assert.False(t, m.KeyPressed(0xF))

	m.SetKey(0x10, true)
	assert.False(t, m.KeyPressed(0x10))
}

func TestMachine_String(t *testing.T) {
	m := New()
	m.registers[0] = 0xAB

	s := m.String()
	assert.True(t, strings.HasPrefix(s, "PC 0200 SP 00 I 0000 regs AB 00"))
}

func TestTickTimers(t *testing.T) {
	m := New()
	m.delayTimer = 5

	for range 5 {
		m.TickTimers()
	}
	assert.Equal(t, uint8(0), m.DelayTimer())

	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestQuirksByName(t *testing.T) {
	q, err := QuirksByName("COSMAC")
	assert.NoError(t, err)
	assert.Equal(t, QuirksCOSMAC, q)

	_, err = QuirksByName("unknown")
	assert.ErrorContains(t, err, "unsupported quirk profile")

	assert.Equal(t, []string{"amiga", "cosmac", "modern", "superchip"}, QuirkProfileNames())
}

func TestNewRandom_Deterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)

	for range 16 {
		assert.Equal(t, a.Byte(), b.Byte())
	}
}
