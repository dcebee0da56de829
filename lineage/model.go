// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import "github.com/grailbio/lineage/tape"

// BuildMatrix builds the transition model of one clone. The matrix has
// 1+max(len(t)) rows and tape.Width(parity) columns. Every transition
// of every tape is counted at its position, then each row is scaled to
// sum to 1. A row that no tape reaches stays all zero. A clone without
// tapes yields a single zero row.
//
// Tapes must be non-empty; empty tapes are rejected with tape.ErrEmpty.
func BuildMatrix(tapes []tape.Tape, parity int) (*TransitionMatrix, error) {
	if err := tape.CheckParity(parity); err != nil {
		return nil, err
	}
	maxLen := 0
	for _, t := range tapes {
		if len(t) == 0 {
			return nil, tape.ErrEmpty
		}
		if len(t) > maxLen {
			maxLen = len(t)
		}
	}
	m := newTransitionMatrix(maxLen+1, parity)
	for _, t := range tapes {
		for i, tr := range tape.Transitions(t, parity) {
			m.data[i*m.nCol+tr.Index(parity)]++
		}
	}
	for i := 0; i < m.nRow; i++ {
		row := m.Row(i)
		var total float64
		for _, v := range row {
			total += v
		}
		if total == 0 {
			continue
		}
		for j := range row {
			row[j] /= total
		}
	}
	return m, nil
}
