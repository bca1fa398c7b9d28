package cpu

import (
	"errors"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted = errors.New(f("halted"))

	// Instruction decode errors
	ErrOpcodeUnsupported = errors.New(f("opcode unsupported"))
	ErrPhaseInvalid      = errors.New(f("phase invalid"))
)

// ErrOpcode identifies the instruction word that failed.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrMemoryFault is an access outside of the memory bounds.
type ErrMemoryFault struct {
	Address uint16 // Raw memory index that was accessed.
	Size    int    // Size of memory, in words.
}

func (em ErrMemoryFault) Error() string {
	return f("memory fault at x%04X (size %d)", em.Address, em.Size)
}

func (em ErrMemoryFault) Is(err error) (ok bool) {
	_, ok = err.(ErrMemoryFault)
	return
}
