package emulator

import (
	"errors"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Address errors
	ErrAddressEmpty = errors.New(f("empty address"))
)

// ErrCommand is an unknown menu command.
type ErrCommand Command

func (err ErrCommand) Error() string {
	return f("unknown command %d", int(err))
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  uint16 // Display address of the failing instruction.
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("x%04X: %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrAddress is an address that could not be parsed.
type ErrAddress string

func (err ErrAddress) Error() string {
	return f("address %q invalid", string(err))
}

func (err ErrAddress) Is(target error) (ok bool) {
	_, ok = target.(ErrAddress)
	return
}
