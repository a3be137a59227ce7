// Package intcode implements the Intcode virtual machine and its tooling.
//
// A Machine holds a growable, zero initialized Memory of signed 256-bit
// Words, a program counter, a relative base register, and FIFO input and
// output queues. Instructions are decoded from the word at the program
// counter: the low two decimal digits select the opcode, and each further
// digit selects the addressing mode (position, immediate or relative) of
// the matching parameter.
//
// Execution is synchronous. The only suspension point is the input
// instruction, which blocks the machine when its input queue is empty;
// the caller may push more input and resume, retrying the same
// instruction.
//
// The package also carries a comma separated program codec, a
// disassembler and a small macro assembler.
package intcode
