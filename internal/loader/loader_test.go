package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load rom file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x60, 0x05, 0x00, 0xE0})

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x05, 0x00, 0xE0}, data)
	})

	t.Run("maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxROMSize))

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, chip8.MaxROMSize)
	})

	t.Run("too large", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxROMSize+1))

		data, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, chip8.ErrROMTooLarge))
		assert.Nil(t, data)
	})

	t.Run("empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := New().Load(tmpFile)
		assert.ErrorContains(t, err, "empty file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "missing.ch8"))
		assert.ErrorContains(t, err, "opening file")
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
