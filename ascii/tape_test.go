package ascii

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bwinton/advent-of-code-sub002/intcode"
)

func TestTape_Next(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("AB\nC")}

	words, err := tape.Next()
	assert.NoError(err)
	assert.Equal(Encode("AB"), words)

	words, err = tape.Next()
	assert.NoError(err)
	assert.Equal(Encode("C"), words)

	_, err = tape.Next()
	assert.ErrorIs(err, io.EOF)

	_, err = (&Tape{}).Next()
	assert.ErrorIs(err, io.EOF)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	for _, w := range Encode("hi") {
		assert.NoError(tape.Send(w))
	}
	assert.False(tape.HasResult)

	assert.NoError(tape.Send(intcode.NewWord(1141869516)))
	assert.True(tape.HasResult)
	assert.Equal(intcode.NewWord(1141869516), tape.Result)
	assert.Equal("hi\n", output.String())
}

func TestTape_Machine(t *testing.T) {
	assert := assert.New(t)

	// Echo one line back, then output 1000.
	asm := &intcode.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"loop:  in ch",
		"       out ch",
		"       eq ch #'\\n' done",
		"       jf done #loop",
		"       out #1000",
		"       hlt",
		"ch:    .data 0",
		"done:  .data 0",
	}, "\n")))
	assert.NoError(err)

	output := &bytes.Buffer{}
	tape := &Tape{Input: strings.NewReader("walk\n"), Output: output}

	line, err := tape.Next()
	assert.NoError(err)

	out, err := prog.Run(line...)
	assert.NoError(err)
	for _, w := range out {
		assert.NoError(tape.Send(w))
	}

	assert.Equal("walk\n", output.String())
	assert.True(tape.HasResult)
	assert.Equal(intcode.NewWord(1000), tape.Result)
}

func TestTape_Rewind(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("one\n")}
	assert.NoError(tape.Send(intcode.NewWord(-1)))
	assert.True(tape.HasResult)

	tape.Rewind()
	assert.False(tape.HasResult)

	tape.Input = strings.NewReader("two\n")
	words, err := tape.Next()
	assert.NoError(err)
	assert.Equal(Encode("two"), words)
}
