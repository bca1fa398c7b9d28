package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/internal"
	"github.com/ezrec/lc3/translate"
)

var f = translate.From

const (
	DEFAULT_COLS  = 80 // Width used when the terminal size is unknown.
	COLUMN_WIDTH  = 34 // Width of the register column.
	CLEAR_SCREEN  = "\x1b[H\x1b[2J"
	MENU_PROMPT   = "> "
	MENU_DIVIDER  = "----------------------------------------------------------"
	MEMORY_WINDOW = 16 // Memory rows displayed.
)

// Screen is everything drawn for one menu.
type Screen struct {
	Snapshot cpu.Snapshot
	Input    string // Last menu key, if any.
	Output   string // Result of the last command, if any.
	Cols     int    // Terminal width, or 0 if unknown.
}

// registerRows returns the formatted register column.
func registerRows(snap cpu.Snapshot) (rows []string) {
	for name, value := range internal.IterSeq2Concat(snap.Registers(), snap.Latches()) {
		row := fmt.Sprintf("%-4s x%04X", name+":", value)
		if name == "IR" {
			row += "  " + cpu.Code(value).String()
		}
		rows = append(rows, row)
	}

	rows = append(rows, fmt.Sprintf("CC:  N: %d  Z: %d  P: %d",
		bit(snap.N), bit(snap.Z), bit(snap.P)))

	return
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Render draws the machine state and the menu.
func Render(w io.Writer, screen Screen) (err error) {
	var out strings.Builder

	cols := screen.Cols
	if cols <= 0 {
		cols = DEFAULT_COLS
	}

	out.WriteString("\n")
	out.WriteString(strings.Repeat(" ", cols/3))
	out.WriteString(f("Welcome To LC-3 Simulator"))
	out.WriteString("\n\n")

	fmt.Fprintf(&out, "%-*s%s\n", COLUMN_WIDTH, f("Registers"), f("Memory"))

	regs := registerRows(screen.Snapshot)
	mem := screen.Snapshot.Memory
	for n := range max(len(regs), len(mem)) {
		var left, right string
		if n < len(regs) {
			left = regs[n]
		}
		if n < len(mem) {
			row := mem[n]
			right = fmt.Sprintf("x%04X: x%04X", row.Address, row.Value)
		}
		line := fmt.Sprintf("%-*s%s", COLUMN_WIDTH, left, right)
		out.WriteString(strings.TrimRight(line, " "))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(f("Select: 1) Load, 2) Run, 3) Step, 5) Display Mem, 9) Exit"))
	out.WriteString("\n")
	out.WriteString(MENU_DIVIDER)
	out.WriteString("\n")
	if len(screen.Input) > 0 {
		fmt.Fprintf(&out, "%-8s%s\n", f("Input:"), screen.Input)
	}
	if len(screen.Output) > 0 {
		fmt.Fprintf(&out, "%-8s%s\n", f("Output:"), screen.Output)
	}
	out.WriteString(MENU_PROMPT)

	_, err = io.WriteString(w, out.String())
	return
}
