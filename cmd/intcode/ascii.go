package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bwinton/advent-of-code-sub002/ascii"
	"github.com/bwinton/advent-of-code-sub002/emulator"
	"github.com/bwinton/advent-of-code-sub002/intcode"
)

var (
	asciiScript string
	asciiLines  []string
	asciiBatch  bool
)

// asciiCmd runs an ASCII program, feeding it lines of text as it asks
// for input.
var asciiCmd = &cobra.Command{
	Use:   "ascii PROGRAM",
	Short: "Run an ASCII program",
	Long: `Run an ASCII program. Input lines come from --line flags, then the
--script file, then standard input. Printable output is echoed; a final
non-ASCII value is printed as the result.

With --batch, only the --line input is supplied and output is printed
once the program halts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		if asciiBatch {
			return runBatch(cmd, prog)
		}

		emu := emulator.NewEmulator(prog)
		emu.Verbose = verbose
		err = emu.Reset(ascii.Encode(asciiLines...)...)
		if err != nil {
			return
		}

		emu.Tape.Output = cmd.OutOrStdout()

		switch {
		case len(asciiScript) != 0:
			var inf *os.File
			inf, err = os.Open(asciiScript)
			if err != nil {
				return
			}
			defer inf.Close()
			emu.Tape.Input = inf
		case term.IsTerminal(int(os.Stdin.Fd())):
			var rl *readline.Instance
			rl, err = readline.New("")
			if err != nil {
				return
			}
			defer rl.Close()
			emu.Tape.Input = &lineReader{rl: rl}
		default:
			emu.Tape.Input = os.Stdin
		}

		err = emu.Run()
		if err != nil {
			return
		}

		if result, ok := emu.Result(); ok {
			fmt.Fprintln(cmd.OutOrStdout(), result)
		}

		return
	},
}

// runBatch runs the program to halt on the queued lines, then prints
// its decoded output.
func runBatch(cmd *cobra.Command, prog *intcode.Program) (err error) {
	m := prog.NewMachine()
	m.Verbose = verbose

	err = m.RunToHalt(ascii.Encode(asciiLines...)...)
	if err != nil {
		return
	}

	text, result, ok := ascii.Decode(m.Output.Drain())
	fmt.Fprint(cmd.OutOrStdout(), text)
	if ok {
		if len(text) > 0 && !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}

	return
}

// lineReader adapts interactive line editing to an io.Reader.
type lineReader struct {
	rl  *readline.Instance
	buf []byte
}

func (lr *lineReader) Read(p []byte) (n int, err error) {
	if len(lr.buf) == 0 {
		var line string
		line, err = lr.rl.Readline()
		if err == readline.ErrInterrupt {
			err = io.EOF
		}
		if err != nil {
			return
		}
		lr.buf = []byte(line + "\n")
	}

	n = copy(p, lr.buf)
	lr.buf = lr.buf[n:]

	return
}

func init() {
	rootCmd.AddCommand(asciiCmd)

	asciiCmd.Flags().StringVarP(&asciiScript, "script", "s", "", "File of input lines")
	asciiCmd.Flags().StringArrayVarP(&asciiLines, "line", "L", nil, "Input line queued before running")
	asciiCmd.Flags().BoolVarP(&asciiBatch, "batch", "b", false, "Run to halt on --line input, then print the output")
}
