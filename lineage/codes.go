// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/lineage/tape"
)

// CodeCount is the number of tapes in a clone that share one code.
type CodeCount struct {
	Code tape.Code
	// Length is the tape length recovered from Code.
	Length int
	Count  int
	// Frequency is Count over the clone's total number of tapes.
	Frequency float64
}

// CodeHistogram summarises a clone as the distribution of its tapes'
// scalar codes, sorted by code. It discards positional structure that
// BuildMatrix keeps, and is reported for QC only.
func CodeHistogram(tapes []tape.Tape, parity int) ([]CodeCount, error) {
	counts := map[tape.Code]int{}
	for _, t := range tapes {
		code, err := tape.Encode(t, parity)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, "encode tape", t.String())
		}
		counts[code]++
	}
	hist := make([]CodeCount, 0, len(counts))
	for code, n := range counts {
		hist = append(hist, CodeCount{
			Code:      code,
			Length:    tape.DecodeLength(code, parity),
			Count:     n,
			Frequency: float64(n) / float64(len(tapes)),
		})
	}
	sort.Slice(hist, func(i, j int) bool { return hist[i].Code < hist[j].Code })
	return hist, nil
}
