package cpu

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(32)

	assert.Len(cpu.Memory, 32)
	assert.Equal(uint16(START_ADDRESS), cpu.StartAddress)
	assert.Equal(PHASE_FETCH, cpu.Phase)
	assert.False(cpu.Verbose)
	assert.False(cpu.SetCC)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(MakeCodeAddImm(0, 0, 5), MakeCodeHalt())

	assert.NoError(cpu.Step())
	assert.NoError(cpu.Tick())
	cpu.Register[3] = 0x1234
	cpu.N, cpu.Z, cpu.P = true, true, true
	cpu.StartAddress = 0x4000

	cpu.Reset()

	assert.Equal([REGISTER_COUNT]uint16{}, cpu.Register)
	assert.Zero(cpu.Pc)
	assert.False(cpu.N || cpu.Z || cpu.P)
	assert.Zero(cpu.Ir)
	assert.Zero(cpu.A)
	assert.Zero(cpu.B)
	assert.Zero(cpu.R)
	assert.Zero(cpu.Mar)
	assert.Zero(cpu.Mdr)
	assert.Zero(cpu.Sext)
	assert.Zero(cpu.Ticks)
	assert.Zero(cpu.Cycles)
	assert.Equal(PHASE_FETCH, cpu.Phase)
	assert.Equal(uint16(START_ADDRESS), cpu.StartAddress)

	_, ok := cpu.Cycle()
	assert.False(ok)

	// Memory survives a reset.
	assert.Equal(uint16(MakeCodeAddImm(0, 0, 5)), cpu.Memory[0])
	assert.Equal(uint16(MakeCodeHalt()), cpu.Memory[1])
}

func TestMemoryAccess(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(4)

	table := [](struct {
		addr uint16
		ok   bool
	}){
		{0, true},
		{3, true},
		{4, false},
		{0x3000, false},
		{0xFFFF, false},
	}

	for _, entry := range table {
		err := cpu.Write(entry.addr, 0xA5A5)
		value, rerr := cpu.Read(entry.addr)
		if entry.ok {
			assert.NoError(err)
			assert.NoError(rerr)
			assert.Equal(uint16(0xA5A5), value)
		} else {
			assert.Equal(ErrMemoryFault{Address: entry.addr, Size: 4}, err)
			assert.ErrorIs(rerr, ErrMemoryFault{})
			assert.Zero(value)
		}
	}
}

func TestSnapshot(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(MEMORY_SIZE)
	cpu.Memory[1] = 0xAAAA
	cpu.Pc = 2
	cpu.Register[5] = 0x5555
	cpu.Z = true

	snap := cpu.Snapshot(32)
	assert.Len(snap.Memory, MEMORY_SIZE)
	assert.Equal(MemoryRow{Address: 0x3001, Value: 0xAAAA}, snap.Memory[1])
	assert.Equal(uint16(0x300F), snap.Memory[MEMORY_SIZE-1].Address)
	assert.Equal(uint16(0x3002), snap.DisplayPc())
	assert.Equal(uint16(2), snap.Pc)
	assert.True(snap.Z)

	snap = cpu.Snapshot(4)
	assert.Len(snap.Memory, 4)

	// Snapshots are copies.
	cpu.Register[5] = 0
	assert.Equal(uint16(0x5555), snap.Register[5])

	regs := maps.Collect(snap.Registers())
	assert.Len(regs, REGISTER_COUNT)
	assert.Equal(uint16(0x5555), regs["R5"])

	var names []string
	for name := range snap.Latches() {
		names = append(names, name)
	}
	assert.Equal([]string{"PC", "IR", "A", "B", "R", "MAR", "MDR"}, names)
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(MakeCodeAddImm(0, 0, 5))
	assert.NoError(cpu.Step())

	text := cpu.String()
	assert.Contains(text, "phase: FETCH\n")
	assert.Contains(text, "pc: x0001\n")
	assert.Contains(text, "ir: x1025 ADD R0, R0, #5\n")
	assert.Contains(text, "r0: x0005\n")
	assert.Contains(text, "cc: N:0 Z:0 P:0\n")
}
