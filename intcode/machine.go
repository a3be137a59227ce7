package intcode

import (
	"fmt"
	"log"
)

// Machine is the execution context of a single Intcode program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Memory       Memory // Program and working data.
	Pc           Word   // Program counter.
	RelativeBase Word   // Offset for relative mode parameters.
	Input        Queue  // Words consumed by the input instruction.
	Output       Queue  // Words produced by the output instruction.

	Status Status // Current execution status.
	Fault  error  // Terminal fault, set when Status is STATUS_FAULTED.
	Ticks  int    // Instructions executed.
}

// NewMachine creates a machine running a copy of image.
func NewMachine(image []Word, inputs ...Word) (m *Machine) {
	m = &Machine{}
	m.Reset(image, inputs...)

	return
}

// Reset the machine state.
// - Loads a copy of image into memory.
// - Clears the registers, queues and counters.
// - Queues the initial input.
func (m *Machine) Reset(image []Word, inputs ...Word) {
	m.Memory.Load(image)
	m.Pc = Word{}
	m.RelativeBase = Word{}
	m.Input.Reset()
	m.Output.Reset()
	m.Input.Push(inputs...)
	m.Status = STATUS_RUNNING
	m.Fault = nil
	m.Ticks = 0
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	current := "----"
	word, err := m.Memory.Read(m.Pc)
	if err == nil {
		current = m.disassemble(word)
	}

	text += fmt.Sprintf("% 7s: %v\n", "pc", m.Pc)
	text += fmt.Sprintf("% 7s: %v\n", "rb", m.RelativeBase)
	text += fmt.Sprintf("% 7s: %v\n", "status", m.Status)
	text += fmt.Sprintf("% 7s: %v\n", "input", m.Input.Len())
	text += fmt.Sprintf("% 7s: %v\n", "output", m.Output.Len())
	text += fmt.Sprintf("% 7s: %v\n", "ticks", m.Ticks)
	text += fmt.Sprintf("% 7s: %v\n", "code", current)
	if m.Fault != nil {
		text += fmt.Sprintf("% 7s: %v\n", "fault", m.Fault)
	}

	return
}

// disassemble formats the instruction word at the program counter.
func (m *Machine) disassemble(word Word) string {
	inst, err := Decode(word)
	if err != nil {
		return ".data " + word.String()
	}

	raw, err := m.params(inst)
	if err != nil {
		return ".data " + word.String()
	}

	return inst.Format(raw)
}

// fail records a terminal fault at the current program counter.
func (m *Machine) fail(word Word, cause error) error {
	m.Status = STATUS_FAULTED
	m.Fault = &ErrFault{Pc: m.Pc, Word: word, Err: cause}

	if m.Verbose {
		log.Printf("intcode: %v", m.Fault)
	}

	return m.Fault
}

// params fetches the raw parameter words following the program counter.
func (m *Machine) params(inst Instruction) (raw []Word, err error) {
	raw = make([]Word, inst.Opcode.Arity())
	for n := range raw {
		raw[n], err = m.Memory.Read(m.Pc.Add(NewWord(int64(n + 1))))
		if err != nil {
			return
		}
	}

	return
}

// value resolves parameter n as a read operand.
func (m *Machine) value(inst Instruction, raw []Word, n int) (value Word, err error) {
	switch inst.Modes[n] {
	case MODE_IMMEDIATE:
		value = raw[n]
	case MODE_RELATIVE:
		value, err = m.Memory.Read(m.RelativeBase.Add(raw[n]))
	default:
		value, err = m.Memory.Read(raw[n])
	}

	return
}

// target resolves parameter n as a write address.
func (m *Machine) target(inst Instruction, raw []Word, n int) (addr Word, err error) {
	switch inst.Modes[n] {
	case MODE_IMMEDIATE:
		err = ErrInvalidWriteMode
	case MODE_RELATIVE:
		addr = m.RelativeBase.Add(raw[n])
	default:
		addr = raw[n]
	}

	return
}

// Tick executes a single instruction.
//
// An input instruction with an empty input queue leaves the machine
// untouched apart from setting STATUS_BLOCKED; the next Tick retries it.
// Ticking a halted or faulted machine returns ErrHalted or the fault.
func (m *Machine) Tick() (err error) {
	switch m.Status {
	case STATUS_HALTED:
		return ErrHalted
	case STATUS_FAULTED:
		return m.Fault
	case STATUS_BLOCKED:
		m.Status = STATUS_RUNNING
	}

	word, err := m.Memory.Read(m.Pc)
	if err != nil {
		return m.fail(word, err)
	}

	inst, err := Decode(word)
	if err != nil {
		return m.fail(word, err)
	}

	raw, err := m.params(inst)
	if err != nil {
		return m.fail(word, err)
	}

	if m.Verbose {
		log.Printf("intcode: %v: %v", m.Pc, inst.Format(raw))
	}

	next_pc := m.Pc.Add(NewWord(int64(inst.Width())))

	// Read operands, in parameter order.
	var args [3]Word
	for n := range inst.Opcode.Arity() {
		if index, ok := inst.Opcode.Target(); ok && index == n {
			args[n], err = m.target(inst, raw, n)
		} else {
			args[n], err = m.value(inst, raw, n)
		}
		if err != nil {
			return m.fail(word, err)
		}
	}

	switch inst.Opcode {
	case OP_ADD:
		err = m.Memory.Write(args[2], args[0].Add(args[1]))
	case OP_MUL:
		err = m.Memory.Write(args[2], args[0].Mul(args[1]))
	case OP_LT:
		err = m.Memory.Write(args[2], boolWord(args[0].Less(args[1])))
	case OP_EQ:
		err = m.Memory.Write(args[2], boolWord(args[0].Equal(args[1])))
	case OP_IN:
		value, ok := m.Input.Peek()
		if !ok {
			// Don't advance; retried on resume.
			m.Status = STATUS_BLOCKED
			if m.Verbose {
				log.Printf("intcode: %v: blocked on input", m.Pc)
			}
			return
		}
		err = m.Memory.Write(args[0], value)
		if err == nil {
			m.Input.Pop()
		}
	case OP_OUT:
		m.Output.Push(args[0])
	case OP_JT:
		if !args[0].IsZero() {
			next_pc = args[1]
		}
	case OP_JF:
		if args[0].IsZero() {
			next_pc = args[1]
		}
	case OP_ARB:
		m.RelativeBase = m.RelativeBase.Add(args[0])
	case OP_HLT:
		next_pc = m.Pc
		m.Status = STATUS_HALTED
	}

	if err != nil {
		return m.fail(word, err)
	}

	m.Pc = next_pc
	m.Ticks++

	return
}

// Run executes instructions until the machine halts, faults, or blocks
// on input. A blocked machine resumes at its pending input instruction.
func (m *Machine) Run() (status Status, err error) {
	for {
		err = m.Tick()
		if err != nil || m.Status != STATUS_RUNNING {
			status = m.Status
			return
		}
	}
}

// RunToHalt queues inputs and runs until the machine halts. Blocking for
// input once the queue is exhausted faults the machine with
// ErrInputExhausted.
func (m *Machine) RunToHalt(inputs ...Word) (err error) {
	m.Input.Push(inputs...)

	status, err := m.Run()
	if err != nil {
		return
	}

	if status == STATUS_BLOCKED {
		word, _ := m.Memory.Read(m.Pc)
		err = m.fail(word, ErrInputExhausted)
	}

	return
}

// boolWord returns 1 for true, 0 for false.
func boolWord(value bool) Word {
	if value {
		return NewWord(1)
	}
	return Word{}
}
