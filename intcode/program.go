package intcode

import (
	"io"
	"strings"
)

// Line maps a range of program words back to an assembler source line.
type Line struct {
	LineNo int      // Source line number.
	Addr   int      // Address of the first word.
	Words  []string // Source words.
	Length int      // Number of words generated.
}

// Program is an initial memory image.
type Program struct {
	Words []Word
	Lines []Line // Source listing, if assembled.
}

// ParseProgram parses a comma separated list of signed decimal integers.
// Whitespace around fields, line breaks and a trailing comma are accepted.
func ParseProgram(input io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	prog = &Program{}

	fields := strings.Split(string(data), ",")
	for n, field := range fields {
		text := strings.TrimSpace(field)
		if len(text) == 0 && n == len(fields)-1 {
			break
		}
		var word Word
		word, err = ParseWord(text)
		if err != nil {
			prog = nil
			err = ErrField{Field: n, Text: text, Err: err}
			return
		}
		prog.Words = append(prog.Words, word)
	}

	return
}

// String returns the program in comma separated form.
func (prog *Program) String() string {
	var sb strings.Builder
	for n, word := range prog.Words {
		if n > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(word.String())
	}
	return sb.String()
}

// NewMachine creates a fresh machine loaded with the program.
func (prog *Program) NewMachine(inputs ...Word) *Machine {
	return NewMachine(prog.Words, inputs...)
}

// Run executes the program once on a fresh machine, returning everything
// it output.
func (prog *Program) Run(inputs ...Word) (output []Word, err error) {
	m := prog.NewMachine()
	err = m.RunToHalt(inputs...)
	output = m.Output.Drain()
	return
}

// Debug returns the source line covering addr.
func (prog *Program) Debug(addr int) (line Line, ok bool) {
	for _, ln := range prog.Lines {
		if addr >= ln.Addr && addr < ln.Addr+ln.Length {
			return ln, true
		}
	}

	return
}
