package chip8

import "github.com/retroenv/retrogolib/log"

// SetKey updates the pressed state of a key in the input latch. Key codes
// outside of 0x0-0xF are ignored.
func (m *Machine) SetKey(code uint8, pressed bool) {
	if code >= KeyCount {
		return
	}
	m.keys[code] = pressed
}

// KeyPressed returns whether the key is set in the input latch.
func (m *Machine) KeyPressed(code uint8) bool {
	if code >= KeyCount {
		return false
	}
	return m.keys[code]
}

// AwaitingKey returns whether execution is paused on a key wait instruction.
func (m *Machine) AwaitingKey() bool {
	return m.awaitingKey
}

// ReportKeyPressed resolves a pending key wait by storing the key code in the
// waiting register and moves the program counter past the key wait
// instruction. Execution continues with the next Step. It is a no-op if no key
// wait is pending or the code is not a valid key.
func (m *Machine) ReportKeyPressed(code uint8) {
	if !m.awaitingKey || code >= KeyCount {
		return
	}

	m.registers[m.awaitingReg] = code
	m.awaitingKey = false
	m.pc = (m.pc + opcodeSize) & MaxAddress

	m.logger.Debug("Key wait resolved",
		log.String("register", registerName(m.awaitingReg)),
		log.Uint8("key", code))
}

func registerName(x uint8) string {
	return "V" + string("0123456789ABCDEF"[x&0xF])
}
