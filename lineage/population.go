// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/lineage/tape"
)

// Clone is one biological sample and the valid tapes read from it.
type Clone struct {
	Name  string
	Tapes []tape.Tape
}

// Population stacks the flattened transition matrices of a list of
// clones, zero-padded on the right to a common width. Row order is the
// order the clones were given in. A Population is read-only once built
// and safe for concurrent use.
type Population struct {
	// Names labels the rows.
	Names []string
	index map[string]int
	width int
	rows  [][]float64
}

// NewPopulation builds the population matrix for clones. Clone names
// must be unique.
func NewPopulation(clones []Clone, parity int) (*Population, error) {
	if err := tape.CheckParity(parity); err != nil {
		return nil, errors.E(errors.Invalid, err)
	}
	p := &Population{
		Names: make([]string, len(clones)),
		index: make(map[string]int, len(clones)),
		rows:  make([][]float64, len(clones)),
	}
	for i, c := range clones {
		if _, ok := p.index[c.Name]; ok {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("duplicate clone name %q", c.Name))
		}
		p.index[c.Name] = i
		p.Names[i] = c.Name
	}
	err := traverse.Each(len(clones), func(i int) error {
		m, err := BuildMatrix(clones[i].Tapes, parity)
		if err != nil {
			return errors.E(err, "clone", clones[i].Name)
		}
		p.rows[i] = m.Flatten()
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, row := range p.rows {
		if len(row) > p.width {
			p.width = len(row)
		}
	}
	for i, row := range p.rows {
		if len(row) < p.width {
			padded := make([]float64, p.width)
			copy(padded, row)
			p.rows[i] = padded
		}
	}
	return p, nil
}

// Len returns the number of clones.
func (p *Population) Len() int { return len(p.rows) }

// Width returns the common row width.
func (p *Population) Width() int { return p.width }

// Index returns the row of the named clone.
func (p *Population) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Row returns row i. The slice aliases the population and must not be
// modified.
func (p *Population) Row(i int) []float64 { return p.rows[i] }

// At returns the value of clone i in column col.
func (p *Population) At(i, col int) float64 { return p.rows[i][col] }

// IsExclusiveSharing reports whether col is non-zero for both clones i
// and j and zero for every other clone. Such a column marks a feature
// found only in the pair.
func (p *Population) IsExclusiveSharing(i, j, col int) bool {
	for x, row := range p.rows {
		if x == i || x == j {
			if row[col] == 0 {
				return false
			}
		} else if row[col] != 0 {
			return false
		}
	}
	return true
}
