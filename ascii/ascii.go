// Package ascii connects Intcode machines to line oriented text.
//
// ASCII programs take their input as character codes, one word per
// byte with each line terminated by a newline, and print by outputting
// character codes. A value outside the ASCII range is not a character:
// it is the program's computed answer.
package ascii

import (
	"iter"
	"slices"
	"strings"

	"github.com/bwinton/advent-of-code-sub002/intcode"
	"github.com/bwinton/advent-of-code-sub002/internal"
)

const (
	ASCII_MAX = 127 // Highest character code.
)

// Chars yields the character code of each byte of text.
func Chars(text string) iter.Seq[intcode.Word] {
	return internal.IterSeqMap(slices.Values([]byte(text)), func(c byte) intcode.Word {
		return intcode.NewWord(int64(c))
	})
}

// Encode transliterates lines into input words, terminating each line
// with a newline.
func Encode(lines ...string) (words []intcode.Word) {
	seqs := make([]iter.Seq[intcode.Word], 0, len(lines))
	for _, line := range lines {
		seqs = append(seqs, Chars(line+"\n"))
	}

	return slices.Collect(internal.IterSeqConcat(seqs...))
}

// Printable returns true if the word is a character code.
func Printable(w intcode.Word) bool {
	value, ok := w.Int64()
	return ok && value >= 0 && value <= ASCII_MAX
}

// Decode splits machine output into its text and, if the final word is
// not a character code, the computed result.
func Decode(output []intcode.Word) (text string, result intcode.Word, ok bool) {
	if len(output) > 0 && !Printable(output[len(output)-1]) {
		result = output[len(output)-1]
		ok = true
		output = output[:len(output)-1]
	}

	var sb strings.Builder
	for _, w := range output {
		value, _ := w.Int64()
		if Printable(w) {
			sb.WriteByte(byte(value))
		} else {
			sb.WriteString(w.String())
		}
	}
	text = sb.String()

	return
}
