// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/lineage/tape"
)

// Weigher assigns a weight to a population column. Weights should grow
// with tape position so deeper shared history dominates the score.
type Weigher interface {
	Weight(col, parity int) float64
}

// WeightFunc adapts a function to the Weigher interface.
type WeightFunc func(col, parity int) float64

// Weight implements Weigher.
func (f WeightFunc) Weight(col, parity int) float64 { return f(col, parity) }

var (
	// ColumnWeight is parity^(col/(parity+2)). The exponent steps once
	// per transition source symbol rather than once per tape position,
	// which is how scores have always been computed; keep it for
	// comparability with earlier runs.
	ColumnWeight Weigher = WeightFunc(func(col, parity int) float64 {
		return math.Pow(float64(parity), float64(col/(parity+2)))
	})
	// PositionWeight is parity^position, where position is the tape
	// position of the column's transition.
	PositionWeight Weigher = WeightFunc(func(col, parity int) float64 {
		return math.Pow(float64(parity), float64(col/tape.Width(parity)))
	})
)

// ParseWeigher returns the weigher named "column" or "position".
func ParseWeigher(name string) (Weigher, error) {
	switch name {
	case "", "column":
		return ColumnWeight, nil
	case "position":
		return PositionWeight, nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown weighting %q", name))
}
