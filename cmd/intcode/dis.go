package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bwinton/advent-of-code-sub002/intcode"
)

// disCmd prints a disassembly that asm accepts back.
var disCmd = &cobra.Command{
	Use:   "dis PROGRAM",
	Short: "Disassemble a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		for addr, text := range intcode.Disassemble(prog.Words) {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s ; %d\n", text, addr)
		}

		return
	},
}

func init() {
	rootCmd.AddCommand(disCmd)
}
