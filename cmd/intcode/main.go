// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwinton/advent-of-code-sub002/intcode"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "Intcode virtual machine",
	Long: `Run, assemble and disassemble Intcode programs.

Programs are either comma separated integers, or assembler source when
the file name ends in .ics.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
}

// loadProgram reads a program file, assembling it if it is source.
// A path of "-" reads standard input.
func loadProgram(path string) (prog *intcode.Program, err error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			return
		}
		defer inf.Close()
		in = inf
	}

	if filepath.Ext(path) == ".ics" {
		asm := &intcode.Assembler{Verbose: verbose}
		prog, err = asm.Parse(in)
	} else {
		prog, err = intcode.ParseProgram(in)
	}
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// parseWords parses a comma separated list of integers.
func parseWords(text string) (words []intcode.Word, err error) {
	prog, err := intcode.ParseProgram(strings.NewReader(text))
	if err != nil {
		return
	}

	return prog.Words, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
