// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package numbers

import (
	"errors"
	"math"
)

// ErrOverflow defines that an arithmetic operation exceeded the uint64 range.
var ErrOverflow = errors.New("uint64 overflow")

// SafeAdd returns a + b, or ErrOverflow when the sum exceeds uint64.
func SafeAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}

	return a + b, nil
}

// SafeSub returns a - b, or ErrOverflow when b is greater than a.
func SafeSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}

	return a - b, nil
}

// SafeMul returns a * b, or ErrOverflow when the product exceeds uint64.
func SafeMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrOverflow
	}

	return a * b, nil
}

// Min returns the least value from provided.
func Min(a uint64, b ...uint64) uint64 {
	minValue := a
	for _, el := range b {
		if el < minValue {
			minValue = el
		}
	}

	return minValue
}

// Max returns the largest value from provided.
func Max(a uint64, b ...uint64) uint64 {
	maxValue := a
	for _, el := range b {
		if el > maxValue {
			maxValue = el
		}
	}

	return maxValue
}
