package config

import (
	"testing"

	"github.com/retroenv/retrochip8/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestCreateMachine(t *testing.T) {
	m, err := CreateMachine(log.NewTestLogger(t), "superchip", 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, chip8.QuirksSuperChip, m.Quirks())
	assert.Equal(t, uint16(chip8.ProgramStart), m.PC())

	_, err = CreateMachine(log.NewTestLogger(t), "invalid", 1, nil)
	assert.ErrorContains(t, err, "resolving quirks")
}

func TestCreateMachine_SeededRandom(t *testing.T) {
	rom := []byte{0xC0, 0xFF, 0xC1, 0xFF, 0xC2, 0xFF}
	run := func() [chip8.RegisterCount]uint8 {
		m, err := CreateMachine(log.NewTestLogger(t), "modern", 99, nil)
		assert.NoError(t, err)
		assert.NoError(t, m.LoadROM(rom))
		for range 3 {
			_, err := m.Step()
			assert.NoError(t, err)
		}
		return m.Registers()
	}

	assert.Equal(t, run(), run())
}
