// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives an Intcode machine against a text tape,
// resuming it with the next line of input each time it blocks.
package emulator

import (
	"errors"
	"io"
	"log"

	"github.com/bwinton/advent-of-code-sub002/ascii"
	"github.com/bwinton/advent-of-code-sub002/intcode"
)

// Emulator state. Machine + program listing + tape.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*intcode.Machine                  // Reference to the machine.
	Program          *intcode.Program // Reference to the currently running program listing.

	Tape ascii.Tape // Line oriented input and printable output.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(prog *intcode.Program) (emu *Emulator) {
	if prog == nil {
		prog = &intcode.Program{}
	}

	emu = &Emulator{
		Machine: intcode.NewMachine(prog.Words),
		Program: prog,
	}

	return
}

// Reset reloads the program and queues the initial input.
func (emu *Emulator) Reset(inputs ...intcode.Word) (err error) {
	emu.Machine.Reset(emu.Program.Words, inputs...)
	emu.Tape.Rewind()

	if emu.Verbose {
		log.Printf("emulator: reset, %v words, %v inputs", len(emu.Program.Words), len(inputs))
	}

	return
}

// LineNo returns the source line number of an address, or 0.
func (emu *Emulator) LineNo(pc intcode.Word) int {
	addr, ok := pc.Int64()
	if !ok {
		return 0
	}

	line, ok := emu.Program.Debug(int(addr))
	if !ok {
		return 0
	}

	return line.LineNo
}

// flush sends all pending output to the tape.
func (emu *Emulator) flush() (err error) {
	for _, value := range emu.Machine.Output.Drain() {
		err = emu.Tape.Send(value)
		if err != nil {
			return
		}
	}

	return
}

// Tick runs the machine until it halts or blocks. A blocked machine is
// given the next line of the tape; when the tape is exhausted the machine
// faults with intcode.ErrInputExhausted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			rt := &ErrRuntime{Err: err}
			var fault *intcode.ErrFault
			if errors.As(err, &fault) {
				rt.Pc = fault.Pc
				rt.LineNo = emu.LineNo(fault.Pc)
			}
			err = rt
		}
	}()

	status, err := emu.Machine.Run()
	if ferr := emu.flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return
	}

	switch status {
	case intcode.STATUS_HALTED:
		done = true
	case intcode.STATUS_BLOCKED:
		var line []intcode.Word
		line, err = emu.Tape.Next()
		if errors.Is(err, io.EOF) {
			err = emu.Machine.RunToHalt()
			return
		}
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Printf("emulator: input %d words", len(line))
		}
		emu.Machine.Input.Push(line...)
	}

	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}

// Result returns the program's non-ASCII answer, if it produced one.
func (emu *Emulator) Result() (value intcode.Word, ok bool) {
	return emu.Tape.Result, emu.Tape.HasResult
}
