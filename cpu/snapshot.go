package cpu

import (
	"fmt"
	"iter"
)

// MemoryRow is one displayed memory cell.
type MemoryRow struct {
	Address uint16 // Display address, StartAddress relative.
	Value   uint16
}

// Snapshot is a read-only copy of the machine state for display.
type Snapshot struct {
	Register [REGISTER_COUNT]uint16
	Pc       uint16
	Ir       uint16
	N, Z, P  bool
	A        uint16
	B        uint16
	R        uint16
	Mar      uint16
	Mdr      uint16
	Sext     uint16
	Phase    Phase

	StartAddress uint16
	Memory       []MemoryRow
}

// Snapshot copies the machine state, with up to 'window' memory cells
// labelled from StartAddress.
func (cpu *Cpu) Snapshot(window int) (snap Snapshot) {
	snap = Snapshot{
		Register:     cpu.Register,
		Pc:           cpu.Pc,
		Ir:           cpu.Ir,
		N:            cpu.N,
		Z:            cpu.Z,
		P:            cpu.P,
		A:            cpu.A,
		B:            cpu.B,
		R:            cpu.R,
		Mar:          cpu.Mar,
		Mdr:          cpu.Mdr,
		Sext:         cpu.Sext,
		Phase:        cpu.Phase,
		StartAddress: cpu.StartAddress,
	}

	window = min(window, len(cpu.Memory))
	for n := range window {
		snap.Memory = append(snap.Memory, MemoryRow{
			Address: cpu.StartAddress + uint16(n),
			Value:   cpu.Memory[n],
		})
	}

	return
}

// DisplayPc returns the PC relabelled against StartAddress.
func (snap Snapshot) DisplayPc() uint16 {
	return snap.StartAddress + snap.Pc
}

// Registers returns an iterator over the register bank as (name, value).
func (snap Snapshot) Registers() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		for n, value := range snap.Register {
			if !yield(fmt.Sprintf("R%d", n), value) {
				return
			}
		}
	}
}

// Latches returns an iterator over the PC, IR and data path latches.
func (snap Snapshot) Latches() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		latches := []struct {
			name  string
			value uint16
		}{
			{"PC", snap.DisplayPc()},
			{"IR", snap.Ir},
			{"A", snap.A},
			{"B", snap.B},
			{"R", snap.R},
			{"MAR", snap.Mar},
			{"MDR", snap.Mdr},
		}
		for _, latch := range latches {
			if !yield(latch.name, latch.value) {
				return
			}
		}
	}
}
