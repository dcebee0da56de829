// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package tape encodes recorder tapes. A tape is the chronological
// sequence of barcode symbols recovered from one read. Symbols are
// first folded into the canonical range [1, parity]; a canonical tape
// then has a scalar code in bijective base-parity numeration and a
// bracketed list of transitions used to build per-clone models.
package tape

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/grailbio/lineage/barcode"
)

var (
	// ErrEmpty is returned when encoding a tape with no symbols.
	ErrEmpty = errors.New("empty tape")
	// ErrOverflow is returned when a tape's code does not fit in a Code.
	ErrOverflow = errors.New("tape code overflows 64 bits")
	// ErrParity is returned for a parity below 1.
	ErrParity = errors.New("parity must be at least 1")
)

// Tape is a sequence of barcode symbols in recording order.
type Tape []barcode.Symbol

// Code is the scalar encoding of a canonical tape.
type Code uint64

// Start is the synthetic symbol that precedes the first event of every
// tape. The matching end symbol depends on parity; see End.
const Start barcode.Symbol = 0

// End returns the synthetic symbol that follows the last event of a
// tape, parity+1.
func End(parity int) barcode.Symbol { return barcode.Symbol(parity + 1) }

// CheckParity returns ErrParity unless parity >= 1.
func CheckParity(parity int) error {
	if parity < 1 {
		return ErrParity
	}
	return nil
}

func mustParity(parity int) {
	if parity < 1 {
		panic(ErrParity)
	}
}

// Canonicalize folds s into [1, parity] as ((s-1) mod parity) + 1.
// Barcodes that differ by a multiple of parity are aliases of the same
// recorder state. Canonicalize is idempotent. It panics with ErrParity
// if parity < 1.
func Canonicalize(s barcode.Symbol, parity int) barcode.Symbol {
	mustParity(parity)
	r := (int(s) - 1) % parity
	if r < 0 {
		r += parity
	}
	return barcode.Symbol(r + 1)
}

// Canonical returns a canonicalized copy of t.
func (t Tape) Canonical(parity int) Tape {
	c := make(Tape, len(t))
	for i, s := range t {
		c[i] = Canonicalize(s, parity)
	}
	return c
}

func (t Tape) String() string {
	parts := make([]string, len(t))
	for i, s := range t {
		parts[i] = fmt.Sprint(int(s))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Encode returns the mixed-radix code of t, most significant symbol
// first:
//
//   code = sum_i canonicalize(t[i]) * parity^(len(t)-1-i)
//
// Since canonical digits run from 1 to parity, this is bijective
// base-parity numeration and DecodeLength/Decode invert it.
func Encode(t Tape, parity int) (Code, error) {
	if err := CheckParity(parity); err != nil {
		return 0, err
	}
	if len(t) == 0 {
		return 0, ErrEmpty
	}
	var code uint64
	for _, s := range t {
		hi, lo := bits.Mul64(code, uint64(parity))
		if hi != 0 {
			return 0, ErrOverflow
		}
		var carry uint64
		code, carry = bits.Add64(lo, uint64(Canonicalize(s, parity)), 0)
		if carry != 0 {
			return 0, ErrOverflow
		}
	}
	return Code(code), nil
}

// DecodeLength recovers the length of the tape that encodes to c. It
// divides by parity until nothing is left; a zero remainder stands for
// the digit parity, so the quotient is decremented once more before
// continuing. parity must match the one used by Encode. DecodeLength
// panics with ErrParity if parity < 1.
func DecodeLength(c Code, parity int) int {
	mustParity(parity)
	var (
		n = 0
		p = Code(parity)
	)
	for c > 0 {
		r := c % p
		c /= p
		if r == 0 {
			c--
		}
		n++
	}
	return n
}

// Decode returns the canonical tape that encodes to c. Decode(0, p) is
// the empty tape. Decode panics with ErrParity if parity < 1.
func Decode(c Code, parity int) Tape {
	mustParity(parity)
	var (
		t Tape
		p = Code(parity)
	)
	for c > 0 {
		r := c % p
		c /= p
		if r == 0 {
			r = p
			c--
		}
		t = append(t, barcode.Symbol(r))
	}
	for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
		t[i], t[j] = t[j], t[i]
	}
	return t
}
