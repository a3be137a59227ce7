package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwinton/advent-of-code-sub002/intcode"
)

var (
	runInput  string
	runPoke   []string
	runPeek   []int
	runLast   bool
	runMemory int
)

// runCmd runs a program to completion with all of its input supplied
// up front.
var runCmd = &cobra.Command{
	Use:   "run PROGRAM",
	Short: "Run a program to completion",
	Long:  `Run a program to completion, then print its output.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		inputs, err := parseWords(runInput)
		if err != nil {
			return fmt.Errorf("--input: %w", err)
		}

		m := prog.NewMachine()
		m.Verbose = verbose
		if runMemory > 0 {
			m.Memory.Limit = runMemory
		}

		for _, poke := range runPoke {
			err = pokeMemory(m, poke)
			if err != nil {
				return
			}
		}

		err = m.RunToHalt(inputs...)
		if verbose {
			cmd.PrintErr(m.String())
		}
		if err != nil {
			return
		}

		var output []intcode.Word
		if runLast {
			if last, ok := m.Output.Last(); ok {
				output = []intcode.Word{last}
			}
		} else {
			output = m.Output.Drain()
		}
		if len(output) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), (&intcode.Program{Words: output}).String())
		}

		for _, addr := range runPeek {
			var value intcode.Word
			value, err = m.Memory.Read(intcode.NewWord(int64(addr)))
			if err != nil {
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%d] %v\n", addr, value)
		}

		return
	},
}

// pokeMemory applies an ADDR=VALUE patch to the machine memory.
func pokeMemory(m *intcode.Machine, poke string) (err error) {
	addr, value, ok := strings.Cut(poke, "=")
	if !ok {
		return fmt.Errorf("--poke %v: want ADDR=VALUE", poke)
	}

	a, err := intcode.ParseWord(strings.TrimSpace(addr))
	if err != nil {
		return
	}
	v, err := intcode.ParseWord(strings.TrimSpace(value))
	if err != nil {
		return
	}

	return m.Memory.Write(a, v)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "Comma separated input values")
	runCmd.Flags().StringSliceVarP(&runPoke, "poke", "p", nil, "Set memory ADDR=VALUE before running")
	runCmd.Flags().IntSliceVar(&runPeek, "peek", nil, "Print memory at ADDR after halting")
	runCmd.Flags().BoolVarP(&runLast, "last", "l", false, "Print only the last output value")
	runCmd.Flags().IntVar(&runMemory, "memory", 0, "Memory limit in words")
}
