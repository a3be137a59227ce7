package intcode

import (
	"errors"
)

// Opcode is an instruction operation, the low two decimal digits of an
// instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD = Opcode(1)  // add
	OP_MUL = Opcode(2)  // mul
	OP_IN  = Opcode(3)  // in
	OP_OUT = Opcode(4)  // out
	OP_JT  = Opcode(5)  // jt
	OP_JF  = Opcode(6)  // jf
	OP_LT  = Opcode(7)  // lt
	OP_EQ  = Opcode(8)  // eq
	OP_ARB = Opcode(9)  // arb
	OP_HLT = Opcode(99) // hlt
)

// Opcodes lists every defined opcode.
var Opcodes = []Opcode{OP_ADD, OP_MUL, OP_IN, OP_OUT, OP_JT, OP_JF, OP_LT, OP_EQ, OP_ARB, OP_HLT}

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Status is the execution state of a Machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_RUNNING = Status(0) // running
	STATUS_HALTED  = Status(1) // halted
	STATUS_BLOCKED = Status(2) // blocked
	STATUS_FAULTED = Status(3) // faulted
)

// Valid returns true for a defined opcode.
func (op Opcode) Valid() bool {
	switch op {
	case OP_ADD, OP_MUL, OP_IN, OP_OUT, OP_JT, OP_JF, OP_LT, OP_EQ, OP_ARB, OP_HLT:
		return true
	}
	return false
}

// Arity returns the number of parameters following the opcode.
func (op Opcode) Arity() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 3
	case OP_JT, OP_JF:
		return 2
	case OP_IN, OP_OUT, OP_ARB:
		return 1
	}
	return 0
}

// Target returns the index of the parameter written by the opcode.
func (op Opcode) Target() (index int, ok bool) {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 2, true
	case OP_IN:
		return 0, true
	}
	return
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode Opcode
	Modes  [3]Mode
}

// Decode splits an instruction word into its opcode and parameter modes.
// Mode digits beyond the opcode's arity are ignored.
func Decode(word Word) (inst Instruction, err error) {
	value, ok := word.Int64()
	if !ok || value < 0 {
		err = ErrOpcode(word)
		return
	}

	inst.Opcode = Opcode(value % 100)
	if !inst.Opcode.Valid() {
		err = ErrOpcode(word)
		return
	}

	value /= 100
	for n := range inst.Opcode.Arity() {
		mode := Mode(value % 10)
		value /= 10
		switch mode {
		case MODE_POSITION, MODE_IMMEDIATE, MODE_RELATIVE:
			inst.Modes[n] = mode
		default:
			err = errors.Join(ErrOpcode(word), ErrUnknownMode)
			return
		}
	}

	return
}

// Encode returns the instruction word.
func (inst Instruction) Encode() Word {
	value := int64(inst.Opcode)
	scale := int64(100)
	for n := range inst.Opcode.Arity() {
		value += int64(inst.Modes[n]) * scale
		scale *= 10
	}
	return NewWord(value)
}

// Width returns the number of words occupied by the instruction.
func (inst Instruction) Width() int {
	return 1 + inst.Opcode.Arity()
}

// Operand formats a raw parameter in assembler syntax.
func (inst Instruction) Operand(n int, raw Word) string {
	switch inst.Modes[n] {
	case MODE_IMMEDIATE:
		return "#" + raw.String()
	case MODE_RELATIVE:
		return "@" + raw.String()
	}
	return raw.String()
}

// Format returns the assembly language representation of the instruction
// with its raw parameters.
func (inst Instruction) Format(raw []Word) (out string) {
	out = inst.Opcode.String()
	for n := range inst.Opcode.Arity() {
		var param Word
		if n < len(raw) {
			param = raw[n]
		}
		out += " " + inst.Operand(n, param)
	}
	return
}
