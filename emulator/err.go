package emulator

import (
	"github.com/bwinton/advent-of-code-sub002/intcode"
	"github.com/bwinton/advent-of-code-sub002/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     intcode.Word
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %v %v", err.Pc.String(), err.Err)
	}
	return f("pc %v line %d %v", err.Pc.String(), err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
