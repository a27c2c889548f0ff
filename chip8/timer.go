package chip8

// TimerFrequency is the rate in Hz at which TickTimers has to be called.
const TimerFrequency = 60

// TickTimers decrements the delay and sound timers by one if they are not
// zero. The host calls it at TimerFrequency independent of the instruction
// rate.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.setSoundTimer(m.soundTimer - 1)
	}
}
