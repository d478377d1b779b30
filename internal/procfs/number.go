package procfs

import (
	"errors"
	"fmt"
	"strconv"
	"unsafe"
)

// Base selects the numeral system of a token.
type Base int

const (
	Octal   Base = 8
	Decimal Base = 10
	Hex     Base = 16
)

// Integer is any built-in integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// NumError records a failed ParseInt. Err is ErrMalformed or ErrOutOfRange.
type NumError struct {
	Token string
	Base  Base
	Bits  int
	Err   error
}

func (e *NumError) Error() string {
	return fmt.Sprintf("decoding %q as base-%d %d-bit integer: %v", e.Token, e.Base, e.Bits, e.Err)
}

func (e *NumError) Unwrap() error { return e.Err }

// ParseInt decodes token into T. No prefixes ("0x"), digit separators or
// surrounding whitespace are accepted; hex digits may be either case. A
// leading sign is accepted for signed T only.
func ParseInt[T Integer](token string, base Base) (T, error) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	signed := zero-1 < zero

	var (
		v   T
		err error
	)
	if signed {
		var n int64
		n, err = strconv.ParseInt(token, int(base), bits)
		v = T(n)
	} else {
		var n uint64
		n, err = strconv.ParseUint(token, int(base), bits)
		v = T(n)
	}
	if err != nil {
		kind := ErrMalformed
		if errors.Is(err, strconv.ErrRange) {
			kind = ErrOutOfRange
		}
		return zero, &NumError{Token: token, Base: base, Bits: bits, Err: kind}
	}
	return v, nil
}
