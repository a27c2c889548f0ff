package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Op identifies the operation of a decoded instruction.
type Op uint8

// CHIP-8 operations. The comment of each lists the opcode encoding.
const (
	OpUnknown    Op = iota // no matching instruction
	OpSys                  // 0NNN
	OpCls                  // 00E0
	OpRet                  // 00EE
	OpJump                 // 1NNN
	OpCall                 // 2NNN
	OpSkipEqImm            // 3XNN
	OpSkipNeImm            // 4XNN
	OpSkipEqReg            // 5XY0
	OpLoadImm              // 6XNN
	OpAddImm               // 7XNN
	OpLoadReg              // 8XY0
	OpOr                   // 8XY1
	OpAnd                  // 8XY2
	OpXor                  // 8XY3
	OpAddReg               // 8XY4
	OpSub                  // 8XY5
	OpShr                  // 8XY6
	OpSubn                 // 8XY7
	OpShl                  // 8XYE
	OpSkipNeReg            // 9XY0
	OpLoadIndex            // ANNN
	OpJumpOffset           // BNNN
	OpRandom               // CXNN
	OpDraw                 // DXYN
	OpSkipKey              // EX9E
	OpSkipNoKey            // EXA1
	OpLoadDelay            // FX07
	OpWaitKey              // FX0A
	OpSetDelay             // FX15
	OpSetSound             // FX18
	OpAddIndex             // FX1E
	OpLoadFont             // FX29
	OpBCD                  // FX33
	OpStore                // FX55
	OpLoad                 // FX65
)

// skipOps contains all conditional skip operations.
var skipOps = newOpSet(OpSkipEqImm, OpSkipNeImm, OpSkipEqReg, OpSkipNeReg, OpSkipKey, OpSkipNoKey)

// branchOps contains all operations that set the program counter explicitly.
var branchOps = newOpSet(OpRet, OpJump, OpCall, OpJumpOffset)

func newOpSet(ops ...Op) set.Set[Op] {
	s := set.New[Op]()
	for _, op := range ops {
		s.Add(op)
	}
	return s
}

// Instruction is a decoded CHIP-8 opcode. Operand fields that the operation
// does not use are still filled from their opcode bit positions.
type Instruction struct {
	Op     Op
	Opcode uint16 // raw opcode

	Group uint8  // leading nibble
	X     uint8  // register index in bits 8-11
	Y     uint8  // register index in bits 4-7
	N     uint8  // 4 bit immediate
	NN    uint8  // 8 bit immediate
	NNN   uint16 // 12 bit address
}

// Decode classifies the opcode and extracts its operand fields. Opcodes that
// match no instruction decode to OpUnknown.
func Decode(opcode uint16) Instruction {
	ins := Instruction{
		Opcode: opcode,
		Group:  uint8(opcode >> 12),
		X:      uint8(opcode>>8) & 0xF,
		Y:      uint8(opcode>>4) & 0xF,
		N:      uint8(opcode) & 0xF,
		NN:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}
	ins.Op = decodeOp(ins)
	return ins
}

func decodeOp(ins Instruction) Op {
	switch ins.Group {
	case 0x0:
		switch ins.Opcode {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
		return OpSys
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqImm
	case 0x4:
		return OpSkipNeImm
	case 0x5:
		if ins.N == 0 {
			return OpSkipEqReg
		}
	case 0x6:
		return OpLoadImm
	case 0x7:
		return OpAddImm
	case 0x8:
		return decodeArithmetic(ins.N)
	case 0x9:
		if ins.N == 0 {
			return OpSkipNeReg
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpOffset
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch ins.NN {
		case 0x9E:
			return OpSkipKey
		case 0xA1:
			return OpSkipNoKey
		}
	case 0xF:
		return decodeMisc(ins.NN)
	}
	return OpUnknown
}

func decodeArithmetic(n uint8) Op {
	switch n {
	case 0x0:
		return OpLoadReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	default:
		return OpUnknown
	}
}

func decodeMisc(nn uint8) Op {
	switch nn {
	case 0x07:
		return OpLoadDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpLoadFont
	case 0x33:
		return OpBCD
	case 0x55:
		return OpStore
	case 0x65:
		return OpLoad
	default:
		return OpUnknown
	}
}

// Valid returns whether the opcode decoded to a known instruction.
func (i Instruction) Valid() bool {
	return i.Op != OpUnknown
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	return skipOps.Contains(i.Op)
}

// IsBranch returns true if the instruction sets the program counter to an
// explicit target.
func (i Instruction) IsBranch() bool {
	return branchOps.Contains(i.Op)
}

// Mnemonic returns the instruction name as listed in the CHIP-8 opcode table,
// or an empty string if the table has no matching entry.
func (i Instruction) Mnemonic() string {
	for _, op := range chip8cpu.Opcodes[int(i.Group)] {
		if op.Info.Mask&i.Opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}
	return ""
}

// String returns the assembly text form of the instruction.
func (i Instruction) String() string {
	switch i.Op {
	case OpSys:
		return fmt.Sprintf("SYS %03X", i.NNN)
	case OpCls:
		return "CLS"
	case OpRet:
		return "RET"
	case OpJump:
		return fmt.Sprintf("JP %03X", i.NNN)
	case OpCall:
		return fmt.Sprintf("CALL %03X", i.NNN)
	case OpSkipEqImm:
		return fmt.Sprintf("SE V%X, %02X", i.X, i.NN)
	case OpSkipNeImm:
		return fmt.Sprintf("SNE V%X, %02X", i.X, i.NN)
	case OpSkipEqReg:
		return fmt.Sprintf("SE V%X, V%X", i.X, i.Y)
	case OpLoadImm:
		return fmt.Sprintf("LD V%X, %02X", i.X, i.NN)
	case OpAddImm:
		return fmt.Sprintf("ADD V%X, %02X", i.X, i.NN)
	case OpLoadReg:
		return fmt.Sprintf("LD V%X, V%X", i.X, i.Y)
	case OpOr:
		return fmt.Sprintf("OR V%X, V%X", i.X, i.Y)
	case OpAnd:
		return fmt.Sprintf("AND V%X, V%X", i.X, i.Y)
	case OpXor:
		return fmt.Sprintf("XOR V%X, V%X", i.X, i.Y)
	case OpAddReg:
		return fmt.Sprintf("ADD V%X, V%X", i.X, i.Y)
	case OpSub:
		return fmt.Sprintf("SUB V%X, V%X", i.X, i.Y)
	case OpShr:
		return fmt.Sprintf("SHR V%X, V%X", i.X, i.Y)
	case OpSubn:
		return fmt.Sprintf("SUBN V%X, V%X", i.X, i.Y)
	case OpShl:
		return fmt.Sprintf("SHL V%X, V%X", i.X, i.Y)
	case OpSkipNeReg:
		return fmt.Sprintf("SNE V%X, V%X", i.X, i.Y)
	case OpLoadIndex:
		return fmt.Sprintf("LD I, %03X", i.NNN)
	case OpJumpOffset:
		return fmt.Sprintf("JP V0, %03X", i.NNN)
	case OpRandom:
		return fmt.Sprintf("RND V%X, %02X", i.X, i.NN)
	case OpDraw:
		return fmt.Sprintf("DRW V%X, V%X, %X", i.X, i.Y, i.N)
	case OpSkipKey:
		return fmt.Sprintf("SKP V%X", i.X)
	case OpSkipNoKey:
		return fmt.Sprintf("SKNP V%X", i.X)
	case OpLoadDelay:
		return fmt.Sprintf("LD V%X, DT", i.X)
	case OpWaitKey:
		return fmt.Sprintf("LD V%X, K", i.X)
	case OpSetDelay:
		return fmt.Sprintf("LD DT, V%X", i.X)
	case OpSetSound:
		return fmt.Sprintf("LD ST, V%X", i.X)
	case OpAddIndex:
		return fmt.Sprintf("ADD I, V%X", i.X)
	case OpLoadFont:
		return fmt.Sprintf("LD F, V%X", i.X)
	case OpBCD:
		return fmt.Sprintf("LD B, V%X", i.X)
	case OpStore:
		return fmt.Sprintf("LD [I], V%X", i.X)
	case OpLoad:
		return fmt.Sprintf("LD V%X, [I]", i.X)
	default:
		return fmt.Sprintf("DW %04X", i.Opcode)
	}
}
