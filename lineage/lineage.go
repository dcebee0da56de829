// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/lineage/tape"
)

// Matrix is a square clone x clone score matrix. Rows and columns are
// labelled by Names.
type Matrix struct {
	Names []string
	index map[string]int
	data  []float64 // row-major len(Names)^2 array.
}

func newMatrix(names []string) *Matrix {
	m := &Matrix{
		Names: names,
		index: make(map[string]int, len(names)),
		data:  make([]float64, len(names)*len(names)),
	}
	for i, name := range names {
		m.index[name] = i
	}
	return m
}

// Len returns the number of clones.
func (m *Matrix) Len() int { return len(m.Names) }

// At returns the score of clone i against clone j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*len(m.Names)+j] }

// Row returns row i. The slice aliases the matrix and must not be
// modified.
func (m *Matrix) Row(i int) []float64 {
	n := len(m.Names)
	return m.data[i*n : (i+1)*n]
}

// Score returns the score of clone a against clone b, by name.
func (m *Matrix) Score(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.At(i, j), true
}

// BuildLineageMatrix scores every ordered pair of clones in pop. Entry
// (i, j) sums w(col)*(1-|P[i,col]-P[j,col]|) over the columns that are
// exclusive to i and j (see Population.IsExclusiveSharing), where w is
// opts.Weigher. The diagonal is zero. Only columns exclusive to some
// pair are weighed, and a non-finite weight on one of them is an error.
//
// Rows are scored in parallel. Each ordered pair is summed on its own,
// over columns in increasing order, so (i, j) and (j, i) perform the
// same floating-point operations in the same order and are bitwise
// equal.
func BuildLineageMatrix(pop *Population, parity int, opts Opts) (*Matrix, error) {
	if err := tape.CheckParity(parity); err != nil {
		return nil, errors.E(errors.Invalid, err)
	}
	var (
		n       = pop.Len()
		width   = pop.Width()
		weigher = opts.weigher()
		weights = make([]float64, width)
		// nonzero[col] is the number of clones with a non-zero value in col.
		nonzero = make([]int, width)
	)
	for i := 0; i < n; i++ {
		for col, v := range pop.Row(i) {
			if v != 0 {
				nonzero[col]++
			}
		}
	}
	for col := range weights {
		if nonzero[col] != 2 {
			continue
		}
		weights[col] = weigher.Weight(col, parity)
		if math.IsNaN(weights[col]) || math.IsInf(weights[col], 0) {
			return nil, errors.E(errors.Invalid, fmt.Sprintf(
				"non-finite weight for shared column %d; tapes are too long for this weighting", col))
		}
	}
	m := newMatrix(append([]string(nil), pop.Names...))
	err := forEach(n, opts.parallelism(), func(i int) error {
		pi := pop.Row(i)
		row := m.Row(i)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			pj := pop.Row(j)
			var s float64
			for col := 0; col < width; col++ {
				// Equivalent to pop.IsExclusiveSharing(i, j, col).
				if nonzero[col] != 2 || pi[col] == 0 || pj[col] == 0 {
					continue
				}
				s += weights[col] * (1 - math.Abs(pi[col]-pj[col]))
			}
			row[j] = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("lineage: scored %d clones over %d columns", n, width)
	return m, nil
}
