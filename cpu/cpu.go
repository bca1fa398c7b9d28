package cpu

import (
	"fmt"
	"log"
)

const (
	REGISTER_COUNT = 8      // General purpose registers R0-R7.
	LINK_REGISTER  = 7      // JSR/JSRR return address register.
	MEMORY_SIZE    = 16     // Default memory size, in words.
	START_ADDRESS  = 0x3000 // Default display base address.
)

// Cpu is the simulation context for the LC-3 style processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	SetCC   bool // Set to derive N/Z/P from ADD, AND, NOT, LD, LDR and LEA results.

	Register [REGISTER_COUNT]uint16 // Register bank.
	Pc       uint16                 // Address of the next instruction to fetch.
	N, Z, P  bool                   // Condition flags.

	// Data path latches. Ir, A, B, R and Sext mirror the in-flight cycle;
	// Mar and Mdr hold the last address/data transaction.
	Ir   uint16
	A    uint16
	B    uint16
	R    uint16
	Mar  uint16
	Mdr  uint16
	Sext uint16

	Memory       []uint16 // Word memory, indexed by raw position.
	StartAddress uint16   // Display label of Memory[0].

	Phase  Phase // Next phase to execute.
	Ticks  int   // Phases executed since reset.
	Cycles int   // Instructions completed since reset.

	cycle *Cycle // In-flight instruction, nil between cycles.
}

// NewCpu creates a new CPU with a specifically sized memory.
func NewCpu(size uint) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: make([]uint16, size),
	}

	cpu.Reset()

	return
}

// Reset the CPU state.
//   - Clears the registers, condition flags, latches and PC.
//   - Abandons any in-flight cycle; the next phase is FETCH.
//   - Restores the default display start address.
//
// Memory contents are left intact.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.N, cpu.Z, cpu.P = false, false, false
	cpu.Ir, cpu.A, cpu.B, cpu.R = 0, 0, 0, 0
	cpu.Mar, cpu.Mdr, cpu.Sext = 0, 0, 0
	cpu.StartAddress = START_ADDRESS
	cpu.Phase = PHASE_FETCH
	cpu.Ticks = 0
	cpu.Cycles = 0
	cpu.cycle = nil
}

// Cycle returns a copy of the in-flight instruction state, if any.
func (cpu *Cpu) Cycle() (cycle Cycle, ok bool) {
	if cpu.cycle == nil {
		return
	}

	return *cpu.cycle, true
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"phase",
		"pc", "ir",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"a", "b", "r", "mar", "mdr", "sext",
		"cc",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "phase":
			strval = cpu.Phase.String()
		case "pc":
			strval = fmt.Sprintf("x%04X", cpu.Pc)
		case "ir":
			strval = fmt.Sprintf("x%04X %v", cpu.Ir, Code(cpu.Ir))
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("x%04X", cpu.Register[byte(reg[1]-'0')])
		case "a":
			strval = fmt.Sprintf("x%04X", cpu.A)
		case "b":
			strval = fmt.Sprintf("x%04X", cpu.B)
		case "r":
			strval = fmt.Sprintf("x%04X", cpu.R)
		case "mar":
			strval = fmt.Sprintf("x%04X", cpu.Mar)
		case "mdr":
			strval = fmt.Sprintf("x%04X", cpu.Mdr)
		case "sext":
			strval = fmt.Sprintf("x%04X", cpu.Sext)
		case "cc":
			strval = fmt.Sprintf("N:%d Z:%d P:%d", bit(cpu.N), bit(cpu.Z), bit(cpu.P))
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
