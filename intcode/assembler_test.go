package intcode

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doAssemble(t *testing.T, program []string) (prog *Program) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.FailNow()
	}

	return
}

func TestAssembler(t *testing.T) {
	table := [](struct {
		name    string
		program []string
		words   []int64
	}){
		{"echo", []string{
			"; echo a value",
			"start: in 20",
			"       out 20",
			"       hlt",
		}, []int64{3, 20, 4, 20, 99}},
		{"modes", []string{
			"add #1, @-2, 7",
			"mul @3 #4 @5",
			"in @0",
		}, []int64{2101, 1, -2, 7, 21202, 3, 4, 5, 203, 0}},
		{"labels", []string{
			".equ BASE 100",
			"        arb #BASE",
			"loop:   out #'A'",
			"        add #$(BASE*2) #-1 count",
			"        jt #1 #done",
			"        .data 0",
			"done:   hlt",
			"count:  .data 0",
		}, []int64{109, 100, 104, 65, 1101, 200, -1, 13, 1105, 1, 12, 0, 99, 0}},
		{"data", []string{
			"msg: .data 'H' 'i' '\\n' 0x10 -3 msg end",
			"end:",
		}, []int64{72, 105, 10, 16, -3, 0, 7}},
		{"macro", []string{
			".macro PRINT X",
			"        out X",
			".endm",
			"        PRINT #7",
			"        PRINT @-1",
			"        hlt",
		}, []int64{104, 7, 204, -1, 99}},
		{"macro_local", []string{
			".macro SKIP",
			"        jt #1 #%over",
			"        .data 1234",
			"%over:",
			".endm",
			"        SKIP",
			"        SKIP",
			"        hlt",
		}, []int64{1105, 1, 4, 1234, 1105, 1, 8, 1234, 99}},
		{"macro_modulo", []string{
			".macro MOD x",
			"%top:   out #$(x % 3)",
			"        jt #0 #%top",
			".endm",
			"        MOD 7",
			"        MOD 8",
		}, []int64{104, 1, 1105, 0, 0, 104, 2, 1105, 0, 5}},
		{"expression", []string{
			".equ WIDTH 40",
			"out #$(WIDTH * WIDTH + 2)",
			"out #$(-HALT)",
			"out #LINENO",
		}, []int64{104, 1602, 104, -99, 104, 4}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			prog := doAssemble(t, entry.program)
			assert.New(t).Equal(Words(entry.words...), prog.Words, entry.name)
		})
	}
}

func TestAssembler_Run(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{
		".equ N 3",
		"        add #N #0 n        ; n = N",
		"loop:   out n",
		"        add n #-1 n",
		"        jt n #loop",
		"        hlt",
		"n:      .data 0",
	})

	output, err := prog.Run()
	assert.NoError(err)
	assert.Equal(Words(3, 2, 1), output)

	line, ok := prog.Debug(10)
	assert.True(ok)
	assert.Equal(5, line.LineNo)
	assert.Equal([]string{"jt", "n", "#loop"}, line.Words)
}

func TestAssembler_WideExpression(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{"out #$(-(1 << 100))"})

	expect, err := ParseWord("-1267650600228229401496703205376")
	assert.NoError(err)
	assert.Equal([]Word{NewWord(104), expect}, prog.Words)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("ANSWER", "42")
	prog, err := asm.Parse(strings.NewReader("out #ANSWER\nout #$(ANSWER+1)\nhlt"))
	assert.NoError(err)
	assert.Equal(Words(104, 42, 104, 43, 99), prog.Words)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		lineno  int
	}){
		{"label_missing", []string{"jt #1 #nowhere", "hlt"}, ErrLabelMissing("nowhere"), 1},
		{"label_duplicate", []string{"a: hlt", "a: hlt"}, ErrLabelDuplicate, 2},
		{"target_immediate", []string{"add #1 #2 #3"}, ErrTargetInvalid, 1},
		{"input_immediate", []string{"hlt", "in #3"}, ErrTargetInvalid, 2},
		{"operand_count", []string{"add 1 2"}, ErrOperandCount, 1},
		{"opcode_invalid", []string{"jmp 1"}, ErrOpcodeInvalid, 1},
		{"value_invalid", []string{"out 1x"}, ErrParseValue("1x"), 1},
		{"data_mode", []string{".data #3"}, ErrParseValue("#3"), 1},
		{"equ_syntax", []string{".equ A"}, ErrEquateSyntax, 1},
		{"equ_duplicate", []string{".equ A 1", ".equ A 2"}, ErrEquateDuplicate, 2},
		{"macro_lonely", []string{".macro M", "hlt"}, ErrMacroLonely, 2},
		{"endm_lonely", []string{"hlt", ".endm"}, ErrMacroLonelyEndm, 2},
		{"macro_nesting", []string{".macro M", ".macro N"}, ErrMacroNesting, 2},
		{"macro_args", []string{".macro M X", "out X", ".endm", "M"}, ErrMacroSyntax, 4},
		{"expression", []string{"out #$(1/0)"}, nil, 1},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.Nil(prog, entry.name)
		assert.Error(err, entry.name)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
		}

		var syntax ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, fmt.Sprintf("%v: %v", entry.name, err))
		}
	}
}

func TestAssembler_Disassembly(t *testing.T) {
	assert := assert.New(t)

	image := Words(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99, 10004, 1099, 5000)

	var listing []string
	for _, text := range Disassemble(image) {
		listing = append(listing, text)
	}

	prog := doAssemble(t, listing)
	assert.Equal(image, prog.Words)
}
