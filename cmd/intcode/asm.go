package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwinton/advent-of-code-sub002/intcode"
)

var (
	asmOutput  string
	asmListing bool
	asmDefines []string
)

// asmCmd assembles source into comma separated form.
var asmCmd = &cobra.Command{
	Use:   "asm SOURCE",
	Short: "Assemble a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inf, err := os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()

		asm := &intcode.Assembler{Verbose: verbose}
		for _, define := range asmDefines {
			name, value, ok := strings.Cut(define, "=")
			if !ok {
				return fmt.Errorf("--define %v: want NAME=VALUE", define)
			}
			asm.Predefine(name, value)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			return fmt.Errorf("%v: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if asmOutput != "-" {
			var ouf *os.File
			ouf, err = os.Create(asmOutput)
			if err != nil {
				return
			}
			defer ouf.Close()
			out = ouf
		}

		if asmListing {
			for _, line := range prog.Lines {
				words := prog.Words[line.Addr : line.Addr+line.Length]
				text := (&intcode.Program{Words: words}).String()
				fmt.Fprintf(cmd.ErrOrStderr(), "%5d %5d: %-24s ; %v\n", line.LineNo, line.Addr, text, strings.Join(line.Words, " "))
			}
		}

		_, err = fmt.Fprintln(out, prog.String())

		return
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)

	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "-", "Output file")
	asmCmd.Flags().BoolVar(&asmListing, "listing", false, "Print an address listing to stderr")
	asmCmd.Flags().StringSliceVarP(&asmDefines, "define", "D", nil, "Predefine NAME=VALUE")
}
