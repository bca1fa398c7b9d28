package cpu

import (
	"context"
	"errors"
	"log"
)

// Phase is a step of the instruction micro-cycle.
type Phase int

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_FETCH     = Phase(0) // FETCH
	PHASE_DECODE    = Phase(1) // DECODE
	PHASE_EVAL_ADDR = Phase(2) // EVAL_ADDR
	PHASE_FETCH_OP  = Phase(3) // FETCH_OP
	PHASE_EXECUTE   = Phase(4) // EXECUTE
	PHASE_STORE     = Phase(5) // STORE
)

// Cycle is the in-flight state of a single instruction. A new Cycle is
// started at every FETCH, so nothing carries over between instructions.
type Cycle struct {
	CurrentPc uint16 // Address the instruction was fetched from.
	NextPc    uint16 // PC after the FETCH increment.
	Ir        Code   // Instruction being executed.
	Opcode    Opcode // Decoded opcode.

	Dr   int    // Destination, or store source, register.
	Sr1  int    // First source, or base, register.
	Sr2  int    // Second source register.
	Sext uint16 // Sign-extended immediate or offset.

	A uint16 // ALU input A.
	B uint16 // ALU input B.
	R uint16 // ALU result.

	Mar uint16 // Effective address for ST.

	N, Z, P bool // Branch conditions requested by BR.
}

// Tick executes a single phase of the micro-cycle.
//
// On error the in-flight cycle is abandoned and the next Tick starts a new
// FETCH. State committed by earlier phases is not rolled back. Executing
// OP_HALT returns ErrHalted from EVAL_ADDR.
func (cpu *Cpu) Tick() (err error) {
	if cpu.cycle == nil {
		cpu.cycle = &Cycle{}
		cpu.Phase = PHASE_FETCH
	}

	cy := cpu.cycle
	phase := cpu.Phase

	defer func() {
		if err != nil {
			if cpu.Verbose {
				log.Printf("cpu: %v: %v", phase, err)
			}
			cpu.cycle = nil
			cpu.Phase = PHASE_FETCH
		}
	}()

	switch phase {
	case PHASE_FETCH:
		err = cpu.fetch(cy)
	case PHASE_DECODE:
		err = cpu.decode(cy)
	case PHASE_EVAL_ADDR:
		err = cpu.evalAddr(cy)
	case PHASE_FETCH_OP:
		err = cpu.fetchOp(cy)
	case PHASE_EXECUTE:
		err = cpu.execute(cy)
	case PHASE_STORE:
		err = cpu.store(cy)
	default:
		err = ErrPhaseInvalid
	}
	if err != nil {
		if phase != PHASE_FETCH && !errors.Is(err, ErrHalted) {
			err = errors.Join(ErrOpcode(cy.Ir), err)
		}
		return
	}

	cpu.Ticks++

	// Mirror the in-flight latches for display.
	cpu.Ir = uint16(cy.Ir)
	cpu.A = cy.A
	cpu.B = cy.B
	cpu.R = cy.R
	cpu.Sext = cy.Sext

	if phase == PHASE_STORE {
		cpu.cycle = nil
		cpu.Phase = PHASE_FETCH
		cpu.Cycles++
	} else {
		cpu.Phase = phase + 1
	}

	return
}

// Step executes the remainder of the current instruction, or one complete
// instruction if none is in flight. It returns once STORE has completed.
func (cpu *Cpu) Step() (err error) {
	for {
		phase := cpu.Phase
		err = cpu.Tick()
		if err != nil {
			return
		}
		if phase == PHASE_STORE {
			return
		}
	}
}

// Run executes instructions until halted, an error occurs, or the context
// is done. The context is checked between phases.
func (cpu *Cpu) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}
		err = cpu.Tick()
		if err != nil {
			return
		}
	}
}

// fetch latches the instruction at PC and advances PC.
func (cpu *Cpu) fetch(cy *Cycle) (err error) {
	cy.CurrentPc = cpu.Pc

	word, err := cpu.Read(cpu.Pc)
	if err != nil {
		return
	}

	cy.Ir = Code(word)
	cpu.Pc++
	cy.NextPc = cpu.Pc

	if cpu.Verbose {
		log.Printf("%04x: %v", cy.CurrentPc, cy.Ir)
	}

	return
}

// decode extracts the opcode.
func (cpu *Cpu) decode(cy *Cycle) (err error) {
	cy.Opcode = cy.Ir.Opcode()
	if !cy.Opcode.Supported() {
		err = ErrOpcodeUnsupported
		return
	}

	return
}

// evalAddr resolves register numbers and sign-extended offsets.
func (cpu *Cpu) evalAddr(cy *Cycle) (err error) {
	ir := cy.Ir

	switch cy.Opcode {
	case OP_ADD, OP_AND:
		cy.Dr = ir.Dr()
		cy.Sr1 = ir.Sr1()
		if ir.Immediate() {
			cy.Sext = ir.Sext5()
		} else {
			cy.Sr2 = ir.Sr2()
		}
	case OP_NOT:
		cy.Dr = ir.Dr()
		cy.Sr1 = ir.Sr1()
	case OP_LD, OP_LEA, OP_ST:
		cy.Dr = ir.Dr()
		cy.Sext = ir.Sext9()
	case OP_LDR, OP_STR:
		cy.Dr = ir.Dr()
		cy.Sr1 = ir.BaseR()
		cy.Sext = ir.Sext6()
	case OP_JMP:
		cy.Sr1 = ir.BaseR()
	case OP_JSR:
		if ir.Bit11() {
			cy.Sext = ir.Sext11()
		} else {
			// Read the base before the link is written, so JSRR R7 works.
			cy.Sr1 = ir.BaseR()
			cy.Sext = cpu.Register[cy.Sr1]
		}
		cpu.Register[LINK_REGISTER] = cy.NextPc
	case OP_BR:
		cy.Sext = ir.Sext9()
		cy.N, cy.Z, cy.P = ir.Nzp()
	case OP_HALT:
		if cpu.Verbose {
			log.Printf("%04x: halt (trap x%02X)", cy.CurrentPc, ir.Trapvect())
		}
		err = ErrHalted
	default:
		err = ErrOpcodeUnsupported
	}

	return
}

// fetchOp moves operand values into the A and B latches.
func (cpu *Cpu) fetchOp(cy *Cycle) (err error) {
	switch cy.Opcode {
	case OP_ADD, OP_AND:
		cy.A = cpu.Register[cy.Sr1]
		if cy.Ir.Immediate() {
			cy.B = cy.Sext
		} else {
			cy.B = cpu.Register[cy.Sr2]
		}
	case OP_NOT, OP_JMP:
		cy.A = cpu.Register[cy.Sr1]
	case OP_LD, OP_LEA:
		cy.A = cy.Sext
	case OP_LDR, OP_STR:
		cy.A = cpu.Register[cy.Sr1]
		cy.B = cy.Sext
	case OP_ST:
		cy.A = cpu.Register[cy.Dr]
		cy.B = cy.Sext
	case OP_JSR, OP_BR:
		cy.A = cy.NextPc
		cy.B = cy.Sext
	default:
		err = ErrOpcodeUnsupported
	}

	return
}

// execute applies the ALU or address rule, producing R.
func (cpu *Cpu) execute(cy *Cycle) (err error) {
	switch cy.Opcode {
	case OP_ADD, OP_LDR:
		cy.R = cy.A + cy.B
		if cy.Opcode == OP_LDR {
			cpu.Mar = cy.R
			cy.R, err = cpu.Read(cpu.Mar)
		}
	case OP_AND:
		cy.R = cy.A & cy.B
	case OP_NOT:
		cy.R = ^cy.A
	case OP_JMP:
		cy.R = cy.A
	case OP_LD:
		cpu.Mar = cy.CurrentPc + cy.A
		cy.R, err = cpu.Read(cpu.Mar)
	case OP_LEA:
		cy.R = cy.CurrentPc + cy.A
	case OP_ST:
		cy.R = cy.A
		cy.Mar = cy.CurrentPc + cy.B
		cpu.Mar = cy.Mar
	case OP_STR:
		cy.R = cy.A + cy.B
	case OP_JSR:
		if cy.Ir.Bit11() {
			cpu.Pc = cy.A + cy.B
		} else {
			cpu.Pc = cy.B
		}
	case OP_BR:
		cy.R = cy.A + cy.B
	default:
		err = ErrOpcodeUnsupported
	}

	return
}

// store commits R to a register, memory or the PC.
func (cpu *Cpu) store(cy *Cycle) (err error) {
	switch cy.Opcode {
	case OP_ADD, OP_AND, OP_NOT, OP_LD, OP_LDR, OP_LEA:
		cpu.Register[cy.Dr] = cy.R
		cpu.Mar = uint16(cy.Dr)
		cpu.Mdr = cy.R
		if cpu.SetCC {
			cpu.setCC(cy.R)
		}
	case OP_ST:
		err = cpu.Write(cy.Mar, cy.R)
		if err != nil {
			return
		}
		cpu.Mar = cy.Mar
		cpu.Mdr = cy.R
	case OP_STR:
		value := cpu.Register[cy.Dr]
		err = cpu.Write(cy.R, value)
		if err != nil {
			return
		}
		cpu.Mar = cy.R
		cpu.Mdr = value
	case OP_JMP:
		cpu.Pc = cy.R
		cpu.Mar = cy.R
		cpu.Mdr = cy.R
	case OP_JSR:
		cpu.Mar = LINK_REGISTER
		cpu.Mdr = cpu.Register[LINK_REGISTER]
	case OP_BR:
		if (cy.N && cpu.N) || (cy.Z && cpu.Z) || (cy.P && cpu.P) {
			cpu.Pc = cy.R
		}
	default:
		err = ErrOpcodeUnsupported
	}

	return
}

// setCC sets exactly one of N, Z or P from a result.
func (cpu *Cpu) setCC(value uint16) {
	cpu.N = int16(value) < 0
	cpu.Z = value == 0
	cpu.P = int16(value) > 0
}
