// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tape

import (
	"fmt"

	"github.com/grailbio/lineage/barcode"
)

// Transition is one step of a bracketed canonical tape.
type Transition struct {
	From, To barcode.Symbol
}

// Index flattens the transition into [0, Width(parity)).
func (tr Transition) Index(parity int) int {
	return int(tr.From)*(parity+2) + int(tr.To)
}

func (tr Transition) String() string {
	return fmt.Sprintf("%d->%d", tr.From, tr.To)
}

// Width returns the number of distinct transitions for a parity,
// (parity+2)^2, counting the Start and End symbols.
func Width(parity int) int {
	return (parity + 2) * (parity + 2)
}

// Transitions canonicalizes t, brackets it with Start and End(parity),
// and returns the consecutive pairs. A tape of length L yields L+1
// transitions; the transition at index i is the one observed at tape
// position i. t must not be empty.
func Transitions(t Tape, parity int) []Transition {
	if len(t) == 0 {
		panic("tape.Transitions: empty tape")
	}
	trs := make([]Transition, 0, len(t)+1)
	prev := Start
	for _, s := range t {
		c := Canonicalize(s, parity)
		trs = append(trs, Transition{From: prev, To: c})
		prev = c
	}
	return append(trs, Transition{From: prev, To: End(parity)})
}
