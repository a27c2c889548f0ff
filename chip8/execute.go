package chip8

import "github.com/retroenv/retrogolib/log"

// Step fetches the opcode at the program counter, decodes and executes it.
// It returns whether the framebuffer was modified. While a key wait is
// pending Step does nothing.
//
// On error the machine state is left unmodified, the program counter still
// points to the faulting instruction.
func (m *Machine) Step() (bool, error) {
	if m.awaitingKey {
		return false, nil
	}

	if int(m.pc)+1 > MaxAddress {
		return false, &MemoryOutOfBoundsError{Address: int(m.pc) + 1, Fetch: true}
	}
	opcode := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])

	drawn, err := m.Execute(Decode(opcode))
	if err != nil {
		m.logger.Debug("Execution fault",
			log.Hex("address", m.pc),
			log.Hex("opcode", opcode),
			log.Err(err))
	}
	return drawn, err
}

// SkipInstruction advances the program counter past the current instruction
// without executing it. Hosts can use it to continue after a fault. The
// program counter wraps around at the end of memory.
func (m *Machine) SkipInstruction() {
	m.pc = (m.pc + opcodeSize) & MaxAddress
}

// Execute applies a decoded instruction to the machine as if it was fetched
// from the current program counter. It returns whether the framebuffer was
// modified. Operand fields are truncated to their encoded bit widths.
func (m *Machine) Execute(ins Instruction) (bool, error) {
	if m.awaitingKey {
		return false, nil
	}

	ins.X &= 0xF
	ins.Y &= 0xF
	ins.N &= 0xF
	ins.NNN &= MaxAddress

	next := m.pc + opcodeSize
	drawn := false
	vx := m.registers[ins.X]
	vy := m.registers[ins.Y]

	switch ins.Op {
	case OpSys:
		if ins.NNN < ProgramStart {
			m.logger.Warn("Machine code routine call outside of program memory",
				log.Hex("address", m.pc),
				log.Hex("target", ins.NNN))
		} else {
			m.logger.Debug("Ignoring machine code routine call",
				log.Hex("address", m.pc),
				log.Hex("target", ins.NNN))
		}

	case OpCls:
		m.display.Clear()
		drawn = true

	case OpRet:
		if m.sp == 0 {
			return false, ErrStackUnderflow
		}
		m.sp--
		next = m.stack[m.sp]

	case OpJump:
		next = ins.NNN

	case OpCall:
		if m.sp == StackSize {
			return false, ErrStackOverflow
		}
		m.stack[m.sp] = m.pc + opcodeSize
		m.sp++
		next = ins.NNN

	case OpSkipEqImm:
		if vx == ins.NN {
			next += opcodeSize
		}

	case OpSkipNeImm:
		if vx != ins.NN {
			next += opcodeSize
		}

	case OpSkipEqReg:
		if vx == vy {
			next += opcodeSize
		}

	case OpSkipNeReg:
		if vx != vy {
			next += opcodeSize
		}

	case OpLoadImm:
		m.registers[ins.X] = ins.NN

	case OpAddImm:
		m.registers[ins.X] = vx + ins.NN

	case OpLoadReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShr, OpSubn, OpShl:
		m.executeArithmetic(ins, vx, vy)

	case OpLoadIndex:
		m.index = ins.NNN

	case OpJumpOffset:
		offset := m.registers[0]
		if m.quirks.JumpUsesVX {
			offset = vx
		}
		next = (ins.NNN + uint16(offset)) & MaxAddress

	case OpRandom:
		m.registers[ins.X] = m.random.Byte() & ins.NN

	case OpDraw:
		if err := m.draw(ins, vx, vy); err != nil {
			return false, err
		}
		drawn = true

	case OpSkipKey:
		if m.keys[vx&0xF] {
			next += opcodeSize
		}

	case OpSkipNoKey:
		if !m.keys[vx&0xF] {
			next += opcodeSize
		}

	case OpLoadDelay:
		m.registers[ins.X] = m.delayTimer

	case OpWaitKey:
		// the program counter stays on FX0A until the key is reported
		next = m.pc
		m.awaitingKey = true
		m.awaitingReg = ins.X
		m.logger.Debug("Waiting for key press",
			log.Hex("address", m.pc),
			log.String("register", registerName(ins.X)))

	case OpSetDelay:
		m.delayTimer = vx

	case OpSetSound:
		m.setSoundTimer(vx)

	case OpAddIndex:
		sum := uint32(m.index) + uint32(vx)
		m.index = uint16(sum) & MaxAddress
		if m.quirks.IndexOverflowFlag {
			m.registers[VF] = boolToFlag(sum > MaxAddress)
		}

	case OpLoadFont:
		m.index = FontAddress + uint16(vx&0xF)*fontGlyphSize

	case OpBCD:
		if err := m.checkRange(m.index, 3); err != nil {
			return false, err
		}
		m.memory[m.index] = vx / 100
		m.memory[m.index+1] = vx / 10 % 10
		m.memory[m.index+2] = vx % 10

	case OpStore, OpLoad:
		count := int(ins.X) + 1
		if err := m.checkRange(m.index, count); err != nil {
			return false, err
		}
		if ins.Op == OpStore {
			copy(m.memory[m.index:], m.registers[:count])
		} else {
			copy(m.registers[:count], m.memory[m.index:])
		}
		if m.quirks.LoadStoreIncrementsI {
			m.index = (m.index + uint16(count)) & MaxAddress
		}

	default:
		return false, &UnknownOpcodeError{Opcode: ins.Opcode, Address: m.pc}
	}

	m.pc = next
	m.cycles++

	if drawn {
		m.observer.DisplayChanged(&m.display)
	}
	return drawn, nil
}

// executeArithmetic handles the register to register operations of the 8XY_
// group. Flag results are written to VF after the result register, so the
// flag wins if X is F.
func (m *Machine) executeArithmetic(ins Instruction, vx, vy uint8) {
	var result, flag uint8
	setFlag := true

	switch ins.Op {
	case OpLoadReg:
		result = vy
		setFlag = false

	case OpOr, OpAnd, OpXor:
		switch ins.Op {
		case OpOr:
			result = vx | vy
		case OpAnd:
			result = vx & vy
		default:
			result = vx ^ vy
		}
		setFlag = m.quirks.LogicResetsVF

	case OpAddReg:
		sum := uint16(vx) + uint16(vy)
		result = uint8(sum)
		flag = boolToFlag(sum > 0xFF)

	case OpSub:
		result = vx - vy
		flag = boolToFlag(vx >= vy)

	case OpSubn:
		result = vy - vx
		flag = boolToFlag(vy >= vx)

	case OpShr:
		src := vx
		if m.quirks.ShiftUsesVY {
			src = vy
		}
		result = src >> 1
		flag = src & 0x01

	case OpShl:
		src := vx
		if m.quirks.ShiftUsesVY {
			src = vy
		}
		result = src << 1
		flag = src >> 7
	}

	m.registers[ins.X] = result
	if setFlag {
		m.registers[VF] = flag
	}
}

// draw XORs the sprite of N bytes at I into the framebuffer and sets VF to
// the collision state.
func (m *Machine) draw(ins Instruction, vx, vy uint8) error {
	if err := m.checkRange(m.index, int(ins.N)); err != nil {
		return err
	}

	sprite := m.memory[m.index : int(m.index)+int(ins.N)]
	collision := m.display.DrawSprite(vx, vy, sprite, m.quirks.WrapSprites)
	m.registers[VF] = boolToFlag(collision)
	return nil
}

// checkRange verifies that length bytes starting at address are within the
// addressable memory.
func (m *Machine) checkRange(address uint16, length int) error {
	if length == 0 {
		return nil
	}
	last := int(address) + length - 1
	if last > MaxAddress {
		return &MemoryOutOfBoundsError{Address: last}
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
