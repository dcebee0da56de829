// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tape

import (
	"math/rand"
	"testing"

	"github.com/grailbio/lineage/barcode"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		s      barcode.Symbol
		parity int
		want   barcode.Symbol
	}{
		{1, 2, 1},
		{2, 2, 2},
		{3, 2, 1},
		{4, 2, 2},
		{7, 3, 1},
		{9, 3, 3},
		{5, 1, 1},
		{0, 4, 4},
	}
	for _, test := range tests {
		expect.EQ(t, Canonicalize(test.s, test.parity), test.want, "s=%d parity=%d", test.s, test.parity)
	}
	for parity := 1; parity <= 6; parity++ {
		for s := barcode.Symbol(0); s < 40; s++ {
			c := Canonicalize(s, parity)
			expect.EQ(t, Canonicalize(c, parity), c)
			expect.True(t, c >= 1 && int(c) <= parity)
		}
	}
}

func TestEncode(t *testing.T) {
	// Dictionary {"AAAA": 1, "CCCC": 2}, parity 2.
	code, err := Encode(Tape{1, 2}, 2)
	require.NoError(t, err)
	expect.EQ(t, code, Code(4))
	expect.EQ(t, DecodeLength(4, 2), 2)

	// Aliases fold before encoding.
	code, err = Encode(Tape{3, 4}, 2)
	require.NoError(t, err)
	expect.EQ(t, code, Code(4))

	code, err = Encode(Tape{3, 1, 2}, 3)
	require.NoError(t, err)
	expect.EQ(t, code, Code(3*9+1*3+2))
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(Tape{}, 2)
	expect.EQ(t, err, ErrEmpty)
	_, err = Encode(Tape{1}, 0)
	expect.EQ(t, err, ErrParity)

	long := make(Tape, 64)
	for i := range long {
		long[i] = 2
	}
	_, err = Encode(long, 2)
	expect.EQ(t, err, ErrOverflow)
	for i := range long {
		long[i] = 1
	}
	code, err := Encode(long[:63], 2)
	require.NoError(t, err)
	expect.EQ(t, code, Code(1<<63-1))
	expect.EQ(t, DecodeLength(code, 2), 63)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for parity := 1; parity <= 5; parity++ {
		for trial := 0; trial < 200; trial++ {
			n := 1 + r.Intn(12)
			tp := make(Tape, n)
			for i := range tp {
				tp[i] = barcode.Symbol(1 + r.Intn(parity))
			}
			code, err := Encode(tp, parity)
			require.NoError(t, err)
			assert.Equal(t, n, DecodeLength(code, parity), "tape %v parity %d", tp, parity)
			assert.Equal(t, tp, Decode(code, parity), "tape %v parity %d", tp, parity)
		}
	}
}

func TestEncodeBijective(t *testing.T) {
	// Every code in [1, 2^1 + 2^2 + 2^3] is hit exactly once by the
	// tapes of length 1 to 3 over {1, 2}.
	seen := map[Code]Tape{}
	var gen func(prefix Tape, n int)
	gen = func(prefix Tape, n int) {
		if len(prefix) == n {
			code, err := Encode(prefix, 2)
			require.NoError(t, err)
			_, dup := seen[code]
			require.False(t, dup, "%v collides with %v", prefix, seen[code])
			seen[code] = append(Tape(nil), prefix...)
			return
		}
		for _, s := range []barcode.Symbol{1, 2} {
			gen(append(prefix, s), n)
		}
	}
	for n := 1; n <= 3; n++ {
		gen(nil, n)
	}
	assert.Equal(t, 14, len(seen))
	for c := Code(1); c <= 14; c++ {
		_, ok := seen[c]
		assert.True(t, ok, "code %d", c)
	}
}

func TestDecodeZero(t *testing.T) {
	expect.EQ(t, DecodeLength(0, 3), 0)
	expect.EQ(t, len(Decode(0, 3)), 0)
}

func TestTapeString(t *testing.T) {
	expect.EQ(t, Tape{3, 1, 2}.String(), "(3 1 2)")
	expect.EQ(t, Tape{5, 6}.Canonical(2), Tape{1, 2})
}

func TestBadParity(t *testing.T) {
	for _, parity := range []int{0, -2} {
		assert.PanicsWithValue(t, ErrParity, func() { Canonicalize(3, parity) })
		assert.PanicsWithValue(t, ErrParity, func() { DecodeLength(5, parity) })
		assert.PanicsWithValue(t, ErrParity, func() { Decode(5, parity) })
		_, err := Encode(Tape{1}, parity)
		assert.Equal(t, ErrParity, err)
	}
}
