// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package intcode

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"HALT":   fmt.Sprintf("%d", int(OP_HLT)),
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	ops := make(map[string]Opcode, len(Opcodes))
	for _, op := range Opcodes {
		ops[op.String()] = op
	}
	return ops
}()

var (
	reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	reChar  = regexp.MustCompile(`'\\?[^']'`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
	reLocal = regexp.MustCompile(`(^|[\s#@,])%([A-Za-z_])`)
)

// assembled is a line of generated words awaiting label linking.
type assembled struct {
	Line
	Codes []Word
	Links map[int]string // Code index to label.
}

// Assembler is a single pass macro assembler for Intcode.
//
// Each line holds an optional 'label:' prefix, then either a mnemonic
// with its operands, or a directive. Operands are 'v' (position), '#v'
// (immediate) or '@v' (relative), where v is a number, a label, an
// equate, a character literal, or a $(...) expression.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	lines []assembled
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value Word, err error) {
	value, err = ParseWord(word)
	if err == nil {
		return
	}

	// Hex, octal and binary forms.
	v64, perr := strconv.ParseInt(word, 0, 64)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	value, err = NewWord(v64), nil
	return
}

// operand decodes a single operand word.
func (asm *Assembler) operand(word string) (mode Mode, value Word, label string, err error) {
	// Macro arguments may carry their own mode prefix.
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	switch {
	case strings.HasPrefix(word, "#"):
		mode = MODE_IMMEDIATE
		word = word[1:]
	case strings.HasPrefix(word, "@"):
		mode = MODE_RELATIVE
		word = word[1:]
	}

	if len(word) == 0 {
		err = ErrParseValue(word)
		return
	}

	equate, ok = asm.Equate[word]
	if ok {
		word = equate
	}

	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if reLabel.MatchString(word) {
		label = word
		err = nil
		return
	}

	err = ErrParseValue(word)
	return
}

// localLabels prefixes each %label token in line, leaving $(...)
// expressions untouched.
func localLabels(line string, local string) string {
	var sb strings.Builder
	last := 0
	for _, span := range reParen.FindAllStringIndex(line, -1) {
		sb.WriteString(reLocal.ReplaceAllString(line[last:span[0]], "${1}"+local+"${2}"))
		sb.WriteString(line[span[0]:span[1]])
		last = span[1]
	}
	sb.WriteString(reLocal.ReplaceAllString(line[last:], "${1}"+local+"${2}"))

	return sb.String()
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var word Word
		word, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		bi, ok := new(big.Int).SetString(word.String(), 10)
		if !ok {
			continue
		}
		pred[key] = starlark.MakeBigInt(bi)
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, err = ParseWord(st_int.String())
	if err != nil {
		err = ErrParseExpression(expr)
	}
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			case "s":
				str = " "
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return value.String()
	})
	if err != nil {
		return
	}

	line = strings.ReplaceAll(line, ",", " ")
	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddr()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique per expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			macro_lineno := macro.LineNo + n

			line = localLabels(line, local)
			words, err = asm.parseLine(line, macro_lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: macro_lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: macro_lineno, Err: err}
				return
			}
		}
		words = nil
		return
	}

	return
}

// currentAddr gets the address of the next generated word.
func (asm *Assembler) currentAddr() int {
	if len(asm.lines) == 0 {
		return 0
	}

	last := asm.lines[len(asm.lines)-1]

	return last.Addr + last.Length
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.lines = asm.lines[:0]
	asm.Label = make(map[string]int, 16)
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	prog = &Program{}
	for _, op := range asm.lines {
		line = strings.Join(op.Words, " ")
		lineno = op.LineNo
		for index, label := range op.Links {
			addr, ok := asm.Label[label]
			if !ok {
				prog = nil
				err = ErrLabelMissing(label)
				return
			}
			op.Codes[index] = NewWord(int64(addr))
		}
		prog.Words = append(prog.Words, op.Codes...)
		prog.Lines = append(prog.Lines, op.Line)
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op := assembled{
		Line: Line{
			LineNo: lineno,
			Addr:   asm.currentAddr(),
			Words:  slices.Clone(words),
		},
	}

	link := func(label string) {
		if len(label) == 0 {
			return
		}
		if op.Links == nil {
			op.Links = make(map[int]string)
		}
		op.Links[len(op.Codes)] = label
	}

	switch words[0] {
	case ".data":
		if len(words) < 2 {
			err = ErrOperandCount
			return
		}
		for _, word := range words[1:] {
			var mode Mode
			var value Word
			var label string
			mode, value, label, err = asm.operand(word)
			if err != nil {
				return
			}
			if mode != MODE_POSITION {
				err = ErrParseValue(word)
				return
			}
			link(label)
			op.Codes = append(op.Codes, value)
		}
	default:
		opcode, ok := opcodeMap[words[0]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		args := words[1:]
		if len(args) != opcode.Arity() {
			err = ErrOperandCount
			return
		}

		inst := Instruction{Opcode: opcode}
		values := make([]Word, len(args))
		labels := make([]string, len(args))
		for n, word := range args {
			inst.Modes[n], values[n], labels[n], err = asm.operand(word)
			if err != nil {
				return
			}
		}

		if index, ok := opcode.Target(); ok && inst.Modes[index] == MODE_IMMEDIATE {
			err = ErrTargetInvalid
			return
		}

		op.Codes = append(op.Codes, inst.Encode())
		for n := range args {
			link(labels[n])
			op.Codes = append(op.Codes, values[n])
		}
	}

	op.Length = len(op.Codes)
	asm.lines = append(asm.lines, op)

	return
}
