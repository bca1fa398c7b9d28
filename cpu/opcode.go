package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the 4-bit operation code in bits [15:12] of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_BR   = Opcode(0)  // BR
	OP_ADD  = Opcode(1)  // ADD
	OP_LD   = Opcode(2)  // LD
	OP_ST   = Opcode(3)  // ST
	OP_JSR  = Opcode(4)  // JSR
	OP_AND  = Opcode(5)  // AND
	OP_LDR  = Opcode(6)  // LDR
	OP_STR  = Opcode(7)  // STR
	OP_RTI  = Opcode(8)  // RTI
	OP_NOT  = Opcode(9)  // NOT
	OP_LDI  = Opcode(10) // LDI
	OP_STI  = Opcode(11) // STI
	OP_JMP  = Opcode(12) // JMP
	OP_RES  = Opcode(13) // RES
	OP_LEA  = Opcode(14) // LEA
	OP_HALT = Opcode(15) // HALT
)

// TRAP_HALT is the trap vector conventionally used with OP_HALT.
const TRAP_HALT = 0x25

// Supported returns true if the engine executes the opcode.
func (op Opcode) Supported() bool {
	switch op {
	case OP_RTI, OP_LDI, OP_STI, OP_RES:
		return false
	}
	return op >= OP_BR && op <= OP_HALT
}

// Code is a single 16-bit instruction word.
type Code uint16

// Opcode returns bits [15:12].
func (code Code) Opcode() Opcode {
	return Opcode((uint16(code) >> 12) & 0xf)
}

// Dr returns the destination (or store source) register, bits [11:9].
func (code Code) Dr() int {
	return int((uint16(code) >> 9) & 0x7)
}

// Sr1 returns the first source register, bits [8:6].
func (code Code) Sr1() int {
	return int((uint16(code) >> 6) & 0x7)
}

// BaseR returns the base register, bits [8:6]. Same field as Sr1.
func (code Code) BaseR() int {
	return int((uint16(code) >> 6) & 0x7)
}

// Sr2 returns the second source register, bits [2:0].
func (code Code) Sr2() int {
	return int(uint16(code) & 0x7)
}

// Immediate returns true if bit 5 selects an immediate second operand.
func (code Code) Immediate() bool {
	return (uint16(code)>>5)&1 == 1
}

// Bit11 returns true if bit 11 is set. JSR uses it to select PC-relative
// addressing over a base register.
func (code Code) Bit11() bool {
	return (uint16(code)>>11)&1 == 1
}

// Nzp returns the branch condition request bits [11:9].
func (code Code) Nzp() (n, z, p bool) {
	word := uint16(code)
	n = (word>>11)&1 == 1
	z = (word>>10)&1 == 1
	p = (word>>9)&1 == 1
	return
}

// Trapvect returns bits [7:0].
func (code Code) Trapvect() uint8 {
	return uint8(code & 0xff)
}

// makeCode creates an instruction with the specified opcode.
func makeCode(op Opcode, bits uint16) Code {
	return Code((uint16(op) << 12) | (bits & 0x0fff))
}

func reg(r int) uint16 {
	return uint16(r) & 0x7
}

// MakeCodeAdd creates an ADD DR, SR1, SR2 instruction.
func MakeCodeAdd(dr, sr1, sr2 int) Code {
	return makeCode(OP_ADD, (reg(dr)<<9)|(reg(sr1)<<6)|reg(sr2))
}

// MakeCodeAddImm creates an ADD DR, SR1, #imm5 instruction.
func MakeCodeAddImm(dr, sr1 int, imm5 int16) Code {
	return makeCode(OP_ADD, (reg(dr)<<9)|(reg(sr1)<<6)|(1<<5)|(uint16(imm5)&0x1f))
}

// MakeCodeAnd creates an AND DR, SR1, SR2 instruction.
func MakeCodeAnd(dr, sr1, sr2 int) Code {
	return makeCode(OP_AND, (reg(dr)<<9)|(reg(sr1)<<6)|reg(sr2))
}

// MakeCodeAndImm creates an AND DR, SR1, #imm5 instruction.
func MakeCodeAndImm(dr, sr1 int, imm5 int16) Code {
	return makeCode(OP_AND, (reg(dr)<<9)|(reg(sr1)<<6)|(1<<5)|(uint16(imm5)&0x1f))
}

// MakeCodeNot creates a NOT DR, SR instruction.
func MakeCodeNot(dr, sr int) Code {
	return makeCode(OP_NOT, (reg(dr)<<9)|(reg(sr)<<6)|0x3f)
}

// MakeCodeBr creates a BRnzp #offset9 instruction.
func MakeCodeBr(n, z, p bool, offset9 int16) Code {
	var nzp uint16
	if n {
		nzp |= 0b100
	}
	if z {
		nzp |= 0b010
	}
	if p {
		nzp |= 0b001
	}
	return makeCode(OP_BR, (nzp<<9)|(uint16(offset9)&0x1ff))
}

// MakeCodeJmp creates a JMP BaseR instruction.
func MakeCodeJmp(base int) Code {
	return makeCode(OP_JMP, reg(base)<<6)
}

// MakeCodeJsr creates a PC-relative JSR #offset11 instruction.
func MakeCodeJsr(offset11 int16) Code {
	return makeCode(OP_JSR, (1<<11)|(uint16(offset11)&0x7ff))
}

// MakeCodeJsrr creates a JSRR BaseR instruction.
func MakeCodeJsrr(base int) Code {
	return makeCode(OP_JSR, reg(base)<<6)
}

// MakeCodeLd creates an LD DR, #offset9 instruction.
func MakeCodeLd(dr int, offset9 int16) Code {
	return makeCode(OP_LD, (reg(dr)<<9)|(uint16(offset9)&0x1ff))
}

// MakeCodeLdr creates an LDR DR, BaseR, #offset6 instruction.
func MakeCodeLdr(dr, base int, offset6 int16) Code {
	return makeCode(OP_LDR, (reg(dr)<<9)|(reg(base)<<6)|(uint16(offset6)&0x3f))
}

// MakeCodeLea creates an LEA DR, #offset9 instruction.
func MakeCodeLea(dr int, offset9 int16) Code {
	return makeCode(OP_LEA, (reg(dr)<<9)|(uint16(offset9)&0x1ff))
}

// MakeCodeSt creates an ST SR, #offset9 instruction.
func MakeCodeSt(sr int, offset9 int16) Code {
	return makeCode(OP_ST, (reg(sr)<<9)|(uint16(offset9)&0x1ff))
}

// MakeCodeStr creates an STR SR, BaseR, #offset6 instruction.
func MakeCodeStr(sr, base int, offset6 int16) Code {
	return makeCode(OP_STR, (reg(sr)<<9)|(reg(base)<<6)|(uint16(offset6)&0x3f))
}

// MakeCodeHalt creates a HALT (TRAP x25) instruction.
func MakeCodeHalt() Code {
	return makeCode(OP_HALT, TRAP_HALT)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op := code.Opcode()

	switch op {
	case OP_ADD, OP_AND:
		if code.Immediate() {
			out = fmt.Sprintf("%v R%d, R%d, #%d", op, code.Dr(), code.Sr1(), int16(code.Sext5()))
		} else {
			out = fmt.Sprintf("%v R%d, R%d, R%d", op, code.Dr(), code.Sr1(), code.Sr2())
		}
	case OP_NOT:
		out = fmt.Sprintf("%v R%d, R%d", op, code.Dr(), code.Sr1())
	case OP_BR:
		var cond strings.Builder
		n, z, p := code.Nzp()
		if n {
			cond.WriteByte('n')
		}
		if z {
			cond.WriteByte('z')
		}
		if p {
			cond.WriteByte('p')
		}
		out = fmt.Sprintf("%v%v #%d", op, cond.String(), int16(code.Sext9()))
	case OP_JMP:
		if code.BaseR() == LINK_REGISTER {
			out = "RET"
		} else {
			out = fmt.Sprintf("%v R%d", op, code.BaseR())
		}
	case OP_JSR:
		if code.Bit11() {
			out = fmt.Sprintf("%v #%d", op, int16(code.Sext11()))
		} else {
			out = fmt.Sprintf("JSRR R%d", code.BaseR())
		}
	case OP_LD, OP_LEA, OP_ST:
		out = fmt.Sprintf("%v R%d, #%d", op, code.Dr(), int16(code.Sext9()))
	case OP_LDR, OP_STR:
		out = fmt.Sprintf("%v R%d, R%d, #%d", op, code.Dr(), code.BaseR(), int16(code.Sext6()))
	case OP_HALT:
		if code.Trapvect() == TRAP_HALT {
			out = op.String()
		} else {
			out = fmt.Sprintf("TRAP x%02X", code.Trapvect())
		}
	default:
		out = fmt.Sprintf(".FILL x%04X", uint16(code))
	}

	return
}
