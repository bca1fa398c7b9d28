// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"

	"github.com/ezrec/lc3/console"
	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/emulator"
)

// options shared by all commands.
type options struct {
	memorySize   uint
	startAddress string
	setCC        bool
	verbose      bool
}

// newEmulator creates an emulator, loading 'image' if not empty.
func (opts *options) newEmulator(image string) (emu *emulator.Emulator, err error) {
	emu = emulator.NewEmulator(opts.memorySize)
	emu.Verbose = opts.verbose
	emu.Cpu.SetCC = opts.setCC

	err = emu.DisplayMem(opts.startAddress)
	if err != nil {
		return
	}

	if len(image) != 0 {
		err = emu.Load(image)
		if err != nil {
			return
		}
	}

	return
}

// interactive runs the menu console.
func (opts *options) interactive(ctx context.Context, image string) (err error) {
	emu, err := opts.newEmulator(image)
	if err != nil {
		return
	}

	con := &console.Console{
		Verbose:  opts.verbose,
		Emulator: emu,
		Output:   os.Stdout,
	}

	if console.IsTerminal(os.Stdin) {
		var tty *console.Terminal
		tty, err = console.OpenTerminal("/dev/tty")
		if err != nil {
			return
		}
		defer tty.Close()

		con.Input = tty
		con.Restore = tty.Restore
		con.Clear = true
		con.Geometry = func() (int, int, error) {
			return console.Geometry(os.Stdout)
		}
	} else {
		con.Input = console.NewLineInput(os.Stdin)
	}

	return con.Loop(ctx)
}

// writeGraph writes the machine state as a dot graph to 'output', or to
// stdout if 'output' is "-".
func writeGraph(emu *emulator.Emulator, output string) (err error) {
	var w io.Writer = os.Stdout
	if output != "-" {
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			return
		}
		defer func() {
			cerr := ouf.Close()
			if err == nil {
				err = cerr
			}
		}()
		w = ouf
	}

	buf := bufio.NewWriter(w)
	memviz.Map(buf, emu.Cpu)

	return buf.Flush()
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "lc3 [image]",
		Short:         "LC-3 micro-cycle simulator",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var image string
			if len(args) == 1 {
				image = args[0]
			}
			return opts.interactive(cmd.Context(), image)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.UintVar(&opts.memorySize, "memory-size", cpu.MEMORY_SIZE, "Memory size, in words")
	flags.StringVar(&opts.startAddress, "start-address", fmt.Sprintf("x%04X", cpu.START_ADDRESS), "Display address of memory[0]")
	flags.BoolVar(&opts.setCC, "set-cc", false, "Set N/Z/P from ADD, AND, NOT, LD, LDR and LEA results")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose mode")

	// run command
	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Run an image until it halts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu, err := opts.newEmulator(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err = emu.Run(ctx)
			fmt.Print(emu.Cpu.String())
			if err != nil {
				return err
			}

			fmt.Printf("Halted at x%04X after %d instructions\n", emu.DisplayPc()-1, emu.Cpu.Cycles)
			return nil
		},
	}

	// step command
	var steps int

	stepCmd := &cobra.Command{
		Use:   "step <image>",
		Short: "Step through an image, printing the state after each instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu, err := opts.newEmulator(args[0])
			if err != nil {
				return err
			}

			for n := range steps {
				pc := emu.DisplayPc()
				done, err := emu.Step()
				if err != nil {
					return err
				}
				if done {
					fmt.Printf("Halted at x%04X\n", pc)
					break
				}
				fmt.Printf("step %d: x%04X %v\n%v\n", n+1, pc, cpu.Code(emu.Cpu.Ir), emu.Cpu)
			}
			return nil
		},
	}
	stepCmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of instructions to step")

	// graph command
	var output string
	var graphSteps int

	graphCmd := &cobra.Command{
		Use:   "graph <image>",
		Short: "Write the machine state as a graphviz dot graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu, err := opts.newEmulator(args[0])
			if err != nil {
				return err
			}

			for range graphSteps {
				done, err := emu.Tick()
				if err != nil {
					return err
				}
				if done {
					break
				}
			}

			return writeGraph(emu, output)
		},
	}
	graphCmd.Flags().StringVarP(&output, "output", "o", "-", "Output dot file")
	graphCmd.Flags().IntVarP(&graphSteps, "ticks", "n", 0, "Phases to execute before the dump")

	rootCmd.AddCommand(runCmd, stepCmd, graphCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
