package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bwinton/advent-of-code-sub002/ascii"
	"github.com/bwinton/advent-of-code-sub002/intcode"
)

// Prints a prompt, then for every input line echoes the first character
// and its code as a result, until a line starting with 'q'.
var promptProgram = []string{
	"        out #'>'",
	"        out #'\\n'",
	"loop:   in ch",
	"        eq ch #'q' done",
	"        jt done #quit",
	"        out ch",
	"        out #'\\n'",
	"skip:   in rest",
	"        eq rest #'\\n' done",
	"        jf done #skip",
	"        jt #1 #loop",
	"quit:   mul ch #1000 ch",
	"        out ch",
	"        hlt",
	"ch:     .data 0",
	"rest:   .data 0",
	"done:   .data 0",
}

func doAssemble(t *testing.T, program []string) *intcode.Program {
	asm := &intcode.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.Equal(intcode.STATUS_RUNNING, emu.Status)
}

func TestEmulatorInteractive(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(doAssemble(t, promptProgram))
	assert.NoError(emu.Reset())

	output := &bytes.Buffer{}
	emu.Tape.Input = strings.NewReader("abc\nxy\nquit\n")
	emu.Tape.Output = output

	ticks := 0
	var done bool
	var err error
	for !done {
		done, err = emu.Tick()
		assert.NoError(err)
		if err != nil {
			t.Log(emu.Machine.String())
			t.FailNow()
		}
		ticks++
	}

	assert.Equal(4, ticks)
	assert.Equal(">\na\nx\n", output.String())

	result, ok := emu.Result()
	assert.True(ok)
	assert.Equal(intcode.NewWord('q'*1000), result)
}

func TestEmulatorPreloaded(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(doAssemble(t, promptProgram))
	assert.NoError(emu.Reset(ascii.Encode("hello", "q")...))

	output := &bytes.Buffer{}
	emu.Tape.Output = output

	assert.NoError(emu.Run())
	assert.Equal(">\nh\n", output.String())
	assert.Equal(intcode.STATUS_HALTED, emu.Status)
}

func TestEmulatorInputExhausted(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(doAssemble(t, promptProgram))
	assert.NoError(emu.Reset())

	output := &bytes.Buffer{}
	emu.Tape.Input = strings.NewReader("abc\n")
	emu.Tape.Output = output

	err := emu.Run()
	assert.ErrorIs(err, intcode.ErrInputExhausted)
	assert.Equal(">\na\n", output.String())

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(3, rt.LineNo)
		assert.Equal(intcode.NewWord(4), rt.Pc)
	}

	_, ok := emu.Result()
	assert.False(ok)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(doAssemble(t, []string{
		"        out #'!'",
		"        .data 5000",
	}))
	assert.NoError(emu.Reset())

	output := &bytes.Buffer{}
	emu.Tape.Output = output

	done, err := emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, intcode.ErrUnknownOpcode)
	assert.Equal("!", output.String())

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(2, rt.LineNo)
	}

	// Terminal faults stay terminal.
	_, err = emu.Tick()
	assert.ErrorIs(err, intcode.ErrUnknownOpcode)
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	prog, err := intcode.ParseProgram(strings.NewReader("3,0,4,0,99"))
	assert.NoError(err)

	emu := NewEmulator(prog)
	for _, value := range []int64{200, -5} {
		assert.NoError(emu.Reset(intcode.NewWord(value)))
		assert.NoError(emu.Run())
		result, ok := emu.Result()
		assert.True(ok)
		assert.Equal(intcode.NewWord(value), result)
	}
}
