// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/lineage/barcode"
	"github.com/grailbio/lineage/tape"
)

// TransitionMatrix is a clone's transition model. Row i is the
// distribution of transitions observed at tape position i over all of
// the clone's tapes; column c is the transition with flattened index c
// (see tape.Transition.Index).
type TransitionMatrix struct {
	parity     int
	nRow, nCol int
	data       []float64 // row-major nRow*nCol array.
}

// newTransitionMatrix returns an n-position zero matrix for parity.
func newTransitionMatrix(n, parity int) *TransitionMatrix {
	m := tape.Width(parity)
	return &TransitionMatrix{
		parity: parity,
		nRow:   n,
		nCol:   m,
		data:   make([]float64, n*m),
	}
}

// Rows returns the number of tape positions, one more than the longest
// tape.
func (m *TransitionMatrix) Rows() int { return m.nRow }

// Cols returns the number of transitions, tape.Width(parity).
func (m *TransitionMatrix) Cols() int { return m.nCol }

// At returns the probability of transition j at position i.
func (m *TransitionMatrix) At(i, j int) float64 { return m.data[i*m.nCol+j] }

// Row returns row i. The slice aliases the matrix and must not be
// modified.
func (m *TransitionMatrix) Row(i int) []float64 {
	return m.data[i*m.nCol : (i+1)*m.nCol]
}

// Flatten returns a row-major copy of the matrix.
func (m *TransitionMatrix) Flatten() []float64 {
	return append([]float64(nil), m.data...)
}

// String returns the non-zero cells, one position per line, as
// "from->to:probability".
func (m *TransitionMatrix) String() string {
	k := m.parity + 2
	var lines []string
	for i := 0; i < m.nRow; i++ {
		var parts []string
		for j, v := range m.Row(i) {
			if v == 0 {
				continue
			}
			tr := tape.Transition{From: barcode.Symbol(j / k), To: barcode.Symbol(j % k)}
			parts = append(parts, tr.String()+":"+strconv.FormatFloat(v, 'g', 4, 64))
		}
		lines = append(lines, fmt.Sprintf("%d: %s", i, strings.Join(parts, " ")))
	}
	return strings.Join(lines, "\n")
}
