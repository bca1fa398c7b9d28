package console

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// Input reads menu keys and prompted lines.
type Input interface {
	// ReadKey returns a single menu key.
	ReadKey() (key byte, err error)
	// ReadLine returns a line of text, without its line ending.
	ReadLine() (line string, err error)
}

// LineInput reads from a line oriented stream, such as a pipe.
// Each menu key is the first character of a non-blank line.
type LineInput struct {
	reader *bufio.Reader
}

var _ Input = &LineInput{}

// NewLineInput creates a line oriented input.
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{reader: bufio.NewReader(r)}
}

func (li *LineInput) ReadLine() (line string, err error) {
	line, err = li.reader.ReadString('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

func (li *LineInput) ReadKey() (key byte, err error) {
	for {
		var line string
		line, err = li.ReadLine()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) > 0 {
			key = line[0]
			return
		}
	}
}

// Terminal reads single keys from a tty in cbreak mode, switching back to
// the original mode to read prompted lines with echo and line editing.
type Terminal struct {
	tty *term.Term
}

var _ Input = &Terminal{}

// OpenTerminal opens a tty device, usually "/dev/tty", in cbreak mode.
func OpenTerminal(name string) (t *Terminal, err error) {
	tty, err := term.Open(name, term.CBreakMode)
	if err != nil {
		return
	}

	t = &Terminal{tty: tty}
	return
}

func (t *Terminal) ReadKey() (key byte, err error) {
	var buff [1]byte
	for {
		var n int
		n, err = t.tty.Read(buff[:])
		if err != nil {
			return
		}
		if n == 1 {
			key = buff[0]
			return
		}
	}
}

func (t *Terminal) ReadLine() (line string, err error) {
	err = t.tty.Restore()
	if err != nil {
		return
	}
	defer func() {
		cerr := term.CBreakMode(t.tty)
		if err == nil {
			err = cerr
		}
	}()

	// In canonical mode every read returns at most one line.
	var buff [256]byte
	n, err := t.tty.Read(buff[:])
	if err != nil {
		return
	}

	line = strings.TrimRight(string(buff[:n]), "\r\n")
	return
}

// Restore puts the tty back into its original mode.
func (t *Terminal) Restore() (err error) {
	return t.tty.Restore()
}

// Close restores and closes the tty.
func (t *Terminal) Close() (err error) {
	err = t.tty.Restore()
	if err != nil {
		t.tty.Close()
		return
	}

	return t.tty.Close()
}

// IsTerminal returns true if the file is a character device.
func IsTerminal(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Geometry returns the size, in characters, of the terminal behind 'file'.
func Geometry(file *os.File) (rows int, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return
	}

	rows = int(ws.Row)
	cols = int(ws.Col)
	return
}
