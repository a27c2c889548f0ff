// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/chip8"
)

var errEmptyFile = errors.New("empty file")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file. It fails if the file does not fit into the
// program memory of the machine.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.Read(file)
}

// Read reads a ROM image from the reader.
func (l *Loader) Read(r io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images
	data, err := io.ReadAll(io.LimitReader(r, chip8.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}
	if len(data) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%w: file exceeds the maximum of %d bytes", chip8.ErrROMTooLarge, chip8.MaxROMSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("reading rom: %w", errEmptyFile)
	}
	return data, nil
}
