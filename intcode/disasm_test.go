package intcode

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	image := Words(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99, 5000, 1)

	listing := maps.Collect(Disassemble(image))

	expect := map[int]string{
		0:  "arb #1",
		2:  "out @-1",
		4:  "add 100 #1 100",
		8:  "eq 100 #16 101",
		12: "jf 101 #0",
		15: "hlt",
		16: ".data 5000",
		17: ".data 1", // truncated add
	}

	assert.Equal(expect, listing)
}

func TestDisassemble_UnusedModes(t *testing.T) {
	assert := assert.New(t)

	image := Words(10004, 7, 1099, 104, 7)

	listing := maps.Collect(Disassemble(image))

	expect := map[int]string{
		0: ".data 10004",
		1: ".data 7",
		2: ".data 1099",
		3: "out #7",
	}

	assert.Equal(expect, listing)
}

func TestDisassemble_Stop(t *testing.T) {
	assert := assert.New(t)

	var addrs []int
	for addr := range Disassemble(Words(99, 99, 99, 99)) {
		addrs = append(addrs, addr)
		if len(addrs) == 2 {
			break
		}
	}

	assert.Equal([]int{0, 1}, addrs)
	assert.Equal(4, len(slices.Collect(maps.Keys(maps.Collect(Disassemble(Words(99, 99, 99, 99)))))))
}
