package intcode

const (
	MEMORY_LIMIT = 1 << 22 // Default maximum addressable words.
)

// Memory is a growable, zero initialized word store addressed from 0.
type Memory struct {
	Data  []Word
	Limit int // Maximum number of words; MEMORY_LIMIT if zero.
}

// address converts a word to a writable memory index.
func (mem *Memory) address(addr Word) (index int, err error) {
	limit := mem.Limit
	if limit == 0 {
		limit = MEMORY_LIMIT
	}

	value, ok := addr.Int64()
	if !ok || value < 0 || value >= int64(limit) {
		err = ErrAddress(addr)
		return
	}

	index = int(value)
	return
}

// Read returns the word at addr. Any non-negative address past the end
// reads as zero, including those beyond Limit.
func (mem *Memory) Read(addr Word) (value Word, err error) {
	if addr.Sign() < 0 {
		err = ErrAddress(addr)
		return
	}

	index, ok := addr.Int64()
	if ok && index < int64(len(mem.Data)) {
		value = mem.Data[index]
	}

	return
}

// Write stores value at addr, extending memory with zeros as needed.
func (mem *Memory) Write(addr Word, value Word) (err error) {
	index, err := mem.address(addr)
	if err != nil {
		return
	}

	if index >= len(mem.Data) {
		mem.Data = append(mem.Data, make([]Word, index+1-len(mem.Data))...)
	}
	mem.Data[index] = value

	return
}

// Len returns the number of materialized words.
func (mem *Memory) Len() int {
	return len(mem.Data)
}

// Load replaces the memory contents with a copy of image.
func (mem *Memory) Load(image []Word) {
	mem.Reset()
	mem.Data = append(mem.Data, image...)
}

// Reset drops all materialized words.
func (mem *Memory) Reset() {
	if len(mem.Data) > 0 {
		mem.Data = mem.Data[:0]
	}
}
