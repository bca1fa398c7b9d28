package cpu

// Read returns the memory word at a raw index.
func (cpu *Cpu) Read(addr uint16) (value uint16, err error) {
	if int(addr) >= len(cpu.Memory) {
		err = ErrMemoryFault{Address: addr, Size: len(cpu.Memory)}
		return
	}

	value = cpu.Memory[addr]
	return
}

// Write sets the memory word at a raw index.
func (cpu *Cpu) Write(addr uint16, value uint16) (err error) {
	if int(addr) >= len(cpu.Memory) {
		err = ErrMemoryFault{Address: addr, Size: len(cpu.Memory)}
		return
	}

	cpu.Memory[addr] = value
	return
}
