package chip8

import "math/rand/v2"

// Random provides the random bytes used by the RND instruction.
type Random interface {
	Byte() uint8
}

// Observer is notified about machine state changes a host may want to present.
type Observer interface {
	// DisplayChanged is called after an instruction modified the framebuffer.
	DisplayChanged(fb *Framebuffer)
	// SoundChanged is called when the sound timer changes between zero and
	// non-zero.
	SoundChanged(active bool)
}

// PCGRandom is a Random backed by a seeded PCG generator, equal seeds produce
// equal byte sequences.
type PCGRandom struct {
	rng *rand.Rand
}

// NewRandom returns a seeded random source.
func NewRandom(seed uint64) *PCGRandom {
	return &PCGRandom{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Byte returns the next random byte.
func (r *PCGRandom) Byte() uint8 {
	return uint8(r.rng.Uint32())
}

type nopObserver struct{}

func (nopObserver) DisplayChanged(*Framebuffer) {}
func (nopObserver) SoundChanged(bool)           {}
