package memory

import (
	"errors"
	"math/bits"
)

var (
	// ErrOverflow reports a range ending past the last 64-bit address.
	ErrOverflow = errors.New("range exceeds the 64-bit address space")

	// ErrEmpty reports a range without elements or with zero sized ones.
	ErrEmpty = errors.New("empty range")
)

// Last returns the last address covered by count elements of units each,
// placed stride apart starting at begin.
func Last(begin, count, stride, units uint64) (uint64, error) {
	if count == 0 || units == 0 {
		return 0, ErrEmpty
	}
	hi, span := bits.Mul64(count-1, stride)
	if hi != 0 {
		return 0, ErrOverflow
	}
	span, carry := bits.Add64(span, units-1, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	end, carry := bits.Add64(begin, span, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return end, nil
}

// Product multiplies factors, failing with ErrOverflow past 64 bits.
func Product(factors ...uint64) (uint64, error) {
	n := uint64(1)
	for _, f := range factors {
		hi, lo := bits.Mul64(n, f)
		if hi != 0 {
			return 0, ErrOverflow
		}
		n = lo
	}
	return n, nil
}

// Units returns how many units of unitBits bits hold size bits.
func Units(size, unitBits uint64) uint64 {
	n := size / unitBits
	if size%unitBits != 0 {
		n++
	}
	return n
}
