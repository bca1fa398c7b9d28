// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/image"
)

// Command is a menu command.
type Command int

//go:generate go tool stringer -linecomment -type=Command
const (
	CMD_LOAD        = Command(1) // LOAD
	CMD_RUN         = Command(2) // RUN
	CMD_STEP        = Command(3) // STEP
	CMD_DISPLAY_MEM = Command(5) // DISPLAY_MEM
	CMD_EXIT        = Command(9) // EXIT
)

// Emulator state. CPU + image file system.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	FS     fs.FS  // File system for LOAD. If nil, the host file system is used.
	Image  string // Name of the last loaded image.
	Halted bool   // Set if the last Tick or Step executed a HALT.
}

// NewEmulator creates a new emulator with 'size' words of memory.
func NewEmulator(size uint) (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(size),
	}

	return
}

// Reset the CPU state, keeping memory and the display address.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose

	start := emu.Cpu.StartAddress
	emu.Cpu.Reset()
	emu.Cpu.StartAddress = start

	emu.Halted = false
}

// openFS returns the file system and path to use to open 'name'.
func (emu *Emulator) openFS(name string) (filesys fs.FS, path string) {
	if emu.FS != nil {
		return emu.FS, name
	}

	dir, path := filepath.Split(name)
	if len(dir) == 0 {
		dir = "."
	}
	filesys = os.DirFS(dir)

	return
}

// Load an image into memory, and reset the CPU to execute it from the
// start of memory. On error the machine state is unchanged; a missing file
// satisfies errors.Is(err, fs.ErrNotExist).
func (emu *Emulator) Load(name string) (err error) {
	filesys, path := emu.openFS(name)

	words, err := image.Load(emu.Cpu.Memory, filesys, path)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %v (%d words)", name, words)
	}

	emu.Image = name
	emu.Reset()

	return
}

// DisplayPc returns the display address of the current instruction.
func (emu *Emulator) DisplayPc() uint16 {
	pc := emu.Cpu.Pc
	if cycle, ok := emu.Cpu.Cycle(); ok {
		pc = cycle.CurrentPc
	}

	return emu.Cpu.StartAddress + pc
}

// wrap places an error in an ErrRuntime, noting a halt as done.
func (emu *Emulator) wrap(pc uint16, err_in error) (done bool, err error) {
	if errors.Is(err_in, cpu.ErrHalted) {
		emu.Halted = true
		done = true
		return
	}

	if err_in != nil {
		err = &ErrRuntime{Pc: pc, Err: err_in}
	}

	return
}

// Tick performs a single phase of the CPU.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Halted = false

	pc := emu.DisplayPc()
	return emu.wrap(pc, emu.Cpu.Tick())
}

// Step completes a single instruction.
func (emu *Emulator) Step() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Halted = false

	pc := emu.DisplayPc()
	return emu.wrap(pc, emu.Cpu.Step())
}

// Run instructions until halted, an error occurs, or the context is done.
// The context is checked between phases.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			err = &ErrRuntime{Pc: emu.DisplayPc(), Err: err}
			return
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}

// DisplayMem relabels the memory display to start at 'address'.
func (emu *Emulator) DisplayMem(address string) (err error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return
	}

	emu.Cpu.StartAddress = addr

	return
}

// Execute a menu command. The argument is the file name for CMD_LOAD and
// the address for CMD_DISPLAY_MEM, and is otherwise ignored. Returns done
// on CMD_EXIT.
func (emu *Emulator) Execute(ctx context.Context, cmd Command, arg string) (done bool, err error) {
	if emu.Verbose {
		log.Printf("emulator: %v %v", cmd, arg)
	}

	switch cmd {
	case CMD_LOAD:
		err = emu.Load(arg)
	case CMD_RUN:
		err = emu.Run(ctx)
	case CMD_STEP:
		_, err = emu.Step()
	case CMD_DISPLAY_MEM:
		err = emu.DisplayMem(arg)
	case CMD_EXIT:
		done = true
	default:
		err = ErrCommand(cmd)
	}

	return
}
