// Package console is the interactive menu for the LC-3 emulator.
//
// Each iteration draws the registers, data path latches and a window of
// memory, then reads a single menu key. The menu is redrawn when the
// terminal is resized, and an interrupt during RUN stops the program
// instead of the emulator.
package console

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/ezrec/lc3/emulator"
)

// Console is the menu driven front end for an emulator.
type Console struct {
	Verbose  bool               // If set, enables verbose logging.
	Emulator *emulator.Emulator // Emulator being driven.
	Input    Input              // Source of menu keys and lines.
	Output   io.Writer          // Destination of the menu.
	Clear    bool               // If set, clears the screen before each redraw.

	// Geometry returns the terminal size. If nil, or on error, the
	// width defaults to DEFAULT_COLS.
	Geometry func() (rows int, cols int, err error)

	// Restore returns the terminal to its original mode before the
	// process is interrupted at the menu.
	Restore func() error

	mu     sync.Mutex // Guards the emulator and the status lines.
	input  string
	output string

	runMu  sync.Mutex
	cancel context.CancelFunc // Cancels the active RUN, if any.
}

// Redraw renders the menu.
func (con *Console) Redraw() (err error) {
	con.mu.Lock()
	defer con.mu.Unlock()

	return con.redraw()
}

func (con *Console) redraw() (err error) {
	screen := Screen{
		Snapshot: con.Emulator.Cpu.Snapshot(MEMORY_WINDOW),
		Input:    con.input,
		Output:   con.output,
	}

	if con.Geometry != nil {
		_, cols, gerr := con.Geometry()
		if gerr == nil {
			screen.Cols = cols
		}
	}

	if con.Clear {
		_, err = io.WriteString(con.Output, CLEAR_SCREEN)
		if err != nil {
			return
		}
	}

	return Render(con.Output, screen)
}

// prompt writes a prompt and reads the reply.
func (con *Console) prompt(text string) (reply string, err error) {
	_, err = io.WriteString(con.Output, text)
	if err != nil {
		return
	}

	return con.Input.ReadLine()
}

// message describes the outcome of a command.
func (con *Console) message(cmd emulator.Command, err error) string {
	emu := con.Emulator

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f("No such File or Directory")
	case errors.Is(err, context.Canceled):
		return f("Interrupted at x%04X", emu.DisplayPc())
	case err != nil:
		return err.Error()
	}

	switch cmd {
	case emulator.CMD_LOAD:
		return f("Loaded %v", emu.Image)
	case emulator.CMD_RUN, emulator.CMD_STEP:
		if emu.Halted {
			return f("Halted at x%04X", emu.DisplayPc()-1)
		}
		if cmd == emulator.CMD_RUN {
			return f("Running...")
		}
		return f("Stepping...")
	case emulator.CMD_DISPLAY_MEM:
		return f("Displaying memory from x%04X", emu.Cpu.StartAddress)
	case emulator.CMD_EXIT:
		return f("Halting...")
	}

	return ""
}

// run executes a RUN that an interrupt can cancel.
func (con *Console) run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	con.runMu.Lock()
	con.cancel = cancel
	con.runMu.Unlock()

	defer func() {
		con.runMu.Lock()
		con.cancel = nil
		con.runMu.Unlock()
	}()

	_, err = con.Emulator.Execute(ctx, emulator.CMD_RUN, "")
	return
}

// Dispatch executes the command selected by a menu key. Returns done when
// the user selects EXIT.
func (con *Console) Dispatch(ctx context.Context, key byte) (done bool, err error) {
	cmd := emulator.Command(key - '0')

	var arg string
	switch cmd {
	case emulator.CMD_LOAD:
		arg, err = con.prompt(f("Enter a file name: "))
	case emulator.CMD_DISPLAY_MEM:
		arg, err = con.prompt(f("Enter a memory address: "))
	}
	if err != nil {
		return
	}

	con.mu.Lock()
	defer con.mu.Unlock()

	if con.Verbose {
		log.Printf("console: key %q: %v", key, cmd)
	}

	var cerr error
	switch cmd {
	case emulator.CMD_RUN:
		cerr = con.run(ctx)
	default:
		done, cerr = con.Emulator.Execute(ctx, cmd, arg)
	}

	con.input = string(rune(key))
	con.output = con.message(cmd, cerr)

	return
}

// watch redraws on terminal resize and cancels RUN on interrupt, until
// the returned function is called.
func (con *Console) watch() (stop func()) {
	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, unix.SIGWINCH)
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)

	terminate := make(chan struct{})
	ack := make(chan struct{})

	go func() {
		defer close(ack)
		for {
			select {
			case <-sigwinch:
				// Skip while a command holds the emulator; the menu
				// is redrawn once it completes.
				if con.mu.TryLock() {
					_ = con.redraw()
					con.mu.Unlock()
				}
			case <-sigint:
				con.runMu.Lock()
				cancel := con.cancel
				con.runMu.Unlock()
				if cancel != nil {
					cancel()
					continue
				}
				// Not running; restore the terminal and die as usual.
				if con.Restore != nil {
					_ = con.Restore()
				}
				signal.Reset(os.Interrupt)
				_ = unix.Kill(unix.Getpid(), unix.SIGINT)
			case <-terminate:
				return
			}
		}
	}()

	stop = func() {
		signal.Stop(sigwinch)
		signal.Stop(sigint)
		close(terminate)
		<-ack
	}

	return
}

// Loop runs the menu until EXIT, end of input, or the context is done.
func (con *Console) Loop(ctx context.Context) (err error) {
	stop := con.watch()
	defer stop()

	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		err = con.Redraw()
		if err != nil {
			return
		}

		var key byte
		key, err = con.Input.ReadKey()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if key == ' ' || key == '\n' || key == '\r' || key == '\t' {
			continue
		}

		var done bool
		done, err = con.Dispatch(ctx, key)
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if done {
			break
		}
	}

	_, err = io.WriteString(con.Output, "\n"+f("Thank you for using!\nSee ya later!")+"\n")
	return
}
