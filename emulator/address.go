package emulator

import (
	"errors"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ParseAddress parses a 16-bit display address.
//
// Plain addresses are hexadecimal, with an optional 'x' or '0x' prefix:
// "3000", "x3000" and "0x3000" are the same address. An address of the form
// "$(expr)" is evaluated as a Starlark integer expression, so "$(0x3000 + 8)"
// is x3008. Results are truncated to 16 bits.
func ParseAddress(text string) (addr uint16, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrAddressEmpty
		return
	}

	if strings.HasPrefix(text, "$(") && strings.HasSuffix(text, ")") {
		var value int64
		value, err = parenEval(text[2 : len(text)-1])
		if err != nil {
			return
		}
		addr = uint16(value)
		return
	}

	digits := text
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		digits = digits[2:]
	case strings.HasPrefix(digits, "x"), strings.HasPrefix(digits, "X"):
		digits = digits[1:]
	}

	value, perr := strconv.ParseUint(digits, 16, 16)
	if perr != nil {
		err = ErrAddress(text)
		return
	}

	addr = uint16(value)
	return
}

// parenEval evaluates a Starlark integer expression.
func parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "address"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrAddress(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrAddress(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrAddress(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrAddress(expr)
		return
	}

	return
}
