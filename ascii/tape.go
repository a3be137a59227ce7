package ascii

import (
	"bufio"
	"errors"
	"io"

	"github.com/bwinton/advent-of-code-sub002/intcode"
)

// Tape streams text lines into a machine and its printable output back
// out. Output words outside the ASCII range are kept as the Result
// rather than written.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Result    intcode.Word // Last non-ASCII output.
	HasResult bool         // Set when Result holds a value.

	reader *bufio.Reader
}

// Rewind drops buffered input and the recorded result. The next read
// starts from the current position of Input.
func (tc *Tape) Rewind() {
	tc.reader = nil
	tc.Result = intcode.Word{}
	tc.HasResult = false
}

// Next reads the next line of input as words, newline included. A final
// line without a newline is terminated. At end of input, io.EOF is
// returned.
func (tc *Tape) Next() (words []intcode.Word, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}

	if tc.reader == nil {
		tc.reader = bufio.NewReader(tc.Input)
	}

	line, err := tc.reader.ReadString('\n')
	if len(line) == 0 {
		if err == nil {
			err = io.EOF
		}
		return
	}
	if errors.Is(err, io.EOF) {
		err = nil
		line += "\n"
	}
	if err != nil {
		return
	}

	for c := range Chars(line) {
		words = append(words, c)
	}

	return
}

// Send writes a character to the output, or records a non-ASCII value
// as the result.
func (tc *Tape) Send(value intcode.Word) (err error) {
	if !Printable(value) {
		tc.Result = value
		tc.HasResult = true
		return
	}

	if tc.Output == nil {
		return
	}

	v, _ := value.Int64()
	_, err = tc.Output.Write([]byte{byte(v)})

	return
}
