package intcode

import (
	"github.com/holiman/uint256"
)

// Word is a signed two's complement 256-bit machine word.
type Word struct {
	v uint256.Int
}

// NewWord returns the Word holding value.
func NewWord(value int64) (w Word) {
	if value < 0 {
		w.v.SetUint64(uint64(-value))
		w.v.Neg(&w.v)
	} else {
		w.v.SetUint64(uint64(value))
	}
	return
}

// Words converts a list of int64 values.
func Words(values ...int64) (words []Word) {
	words = make([]Word, len(values))
	for n, value := range values {
		words[n] = NewWord(value)
	}
	return
}

// ParseWord parses a signed decimal integer.
func ParseWord(text string) (w Word, err error) {
	digits := text
	negative := false
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	if len(digits) == 0 {
		err = ErrParseNumber(text)
		return
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			err = ErrParseNumber(text)
			return
		}
	}

	if w.v.SetFromDecimal(digits) != nil {
		err = ErrParseNumber(text)
		return
	}

	if negative {
		w.v.Neg(&w.v)
		if !w.v.IsZero() && w.v.Sign() >= 0 {
			err = ErrParseNumber(text)
			return
		}
	} else if w.v.Sign() < 0 {
		err = ErrParseNumber(text)
		return
	}

	return
}

// Add returns w + x.
func (w Word) Add(x Word) (out Word) {
	out.v.Add(&w.v, &x.v)
	return
}

// Mul returns w * x.
func (w Word) Mul(x Word) (out Word) {
	out.v.Mul(&w.v, &x.v)
	return
}

// Less compares as signed integers.
func (w Word) Less(x Word) bool {
	return w.v.Slt(&x.v)
}

// Equal returns true if both words hold the same value.
func (w Word) Equal(x Word) bool {
	return w.v.Eq(&x.v)
}

// IsZero returns true for zero.
func (w Word) IsZero() bool {
	return w.v.IsZero()
}

// Sign returns -1, 0 or +1.
func (w Word) Sign() int {
	return w.v.Sign()
}

// Int64 returns the value if it fits in an int64.
func (w Word) Int64() (value int64, ok bool) {
	if w.v.Sign() >= 0 {
		if !w.v.IsUint64() || w.v.Uint64() > 1<<63-1 {
			return
		}
		return int64(w.v.Uint64()), true
	}

	var mag uint256.Int
	mag.Neg(&w.v)
	if !mag.IsUint64() || mag.Uint64() > 1<<63 {
		return
	}

	return int64(-mag.Uint64()), true
}

// String returns the signed decimal representation.
func (w Word) String() string {
	if w.v.Sign() < 0 {
		var mag uint256.Int
		mag.Neg(&w.v)
		return "-" + mag.Dec()
	}

	return w.v.Dec()
}
