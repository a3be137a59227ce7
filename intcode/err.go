package intcode

import (
	"errors"

	"github.com/bwinton/advent-of-code-sub002/translate"
)

var f = translate.From

var (
	// Machine faults
	ErrInvalidAddress   = errors.New(f("invalid address"))
	ErrInvalidWriteMode = errors.New(f("immediate mode write target"))
	ErrUnknownOpcode    = errors.New(f("unknown opcode"))
	ErrUnknownMode      = errors.New(f("unknown parameter mode"))
	ErrInputExhausted   = errors.New(f("input exhausted"))
	ErrHalted           = errors.New(f("machine halted"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("wrong operand count"))
	ErrTargetInvalid   = errors.New(f("target invalid"))
)

// ErrAddress is an address that cannot be used to access memory.
type ErrAddress Word

func (ea ErrAddress) Error() string {
	return f("invalid address %v", Word(ea).String())
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrInvalidAddress
}

// ErrOpcode is an instruction word that does not decode.
type ErrOpcode Word

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", Word(eo).String())
}

func (eo ErrOpcode) Is(err error) bool {
	return err == ErrUnknownOpcode
}

// ErrFault is a terminal machine fault.
type ErrFault struct {
	Pc   Word // Address of the faulting instruction.
	Word Word // Instruction word at Pc.
	Err  error
}

func (err *ErrFault) Error() string {
	return f("fault at %v (%v) %v", err.Pc.String(), err.Word.String(), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or label", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrField locates a bad field of a comma separated program.
type ErrField struct {
	Field int
	Text  string
	Err   error
}

func (err ErrField) Error() string {
	return f("field %d '%v' %v", err.Field, err.Text, err.Err)
}

func (err ErrField) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
