package intcode

import (
	"iter"
)

// Disassemble walks a memory image from address 0, yielding the address
// and assembly text of each instruction. Words that do not decode, that
// carry mode digits the opcode does not use, or that start instructions
// truncated by the end of the image are yielded one word at a time as
// .data, so the listing always reassembles to the same image.
func Disassemble(image []Word) iter.Seq2[int, string] {
	return func(yield func(addr int, text string) bool) {
		for addr := 0; addr < len(image); {
			word := image[addr]
			inst, err := Decode(word)
			if err != nil || !inst.Encode().Equal(word) || addr+inst.Width() > len(image) {
				if !yield(addr, ".data "+word.String()) {
					return
				}
				addr++
				continue
			}

			if !yield(addr, inst.Format(image[addr+1:addr+inst.Width()])) {
				return
			}
			addr += inst.Width()
		}
	}
}
