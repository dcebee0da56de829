// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package barcode

import "fmt"

// maxMissDistance is the last bucket of Stats.MissDistance.
const maxMissDistance = 4

// Stats counts extraction outcomes over a set of reads.
type Stats struct {
	// Reads is the # of reads scanned.
	Reads int
	// NoAnchor is the # of reads without the spacer stem.
	NoAnchor int
	// NoMarker is the # of anchored reads without a valid orientation
	// marker.
	NoMarker int
	// Empty is the # of scanned reads in which no insert was found.
	Empty int
	// WithMisses is the # of reads discarded because at least one
	// payload was not in the dictionary.
	WithMisses int
	// Accepted is the # of reads that produced a valid tape.
	Accepted int
	// Misses is the total # of unrecognised payloads.
	Misses int
	// MissDistance[k] counts unrecognised payloads whose nearest known
	// barcode is k edits away. The last bucket counts everything >=
	// maxMissDistance.
	MissDistance [maxMissDistance + 1]int
}

// Record adds one extraction to the counters. dict is used only to
// bucket misses by distance and may be nil.
func (s *Stats) Record(e Extraction, dict *Dictionary) {
	s.Reads++
	switch e.Status {
	case NoAnchor:
		s.NoAnchor++
		return
	case NoMarker:
		s.NoMarker++
		return
	}
	if len(e.Misses) > 0 {
		s.WithMisses++
		s.Misses += len(e.Misses)
		if dict != nil {
			for _, m := range e.Misses {
				_, d := dict.Nearest(m)
				if d > maxMissDistance {
					d = maxMissDistance
				}
				s.MissDistance[d]++
			}
		}
		return
	}
	if len(e.Tape) == 0 {
		s.Empty++
		return
	}
	s.Accepted++
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Reads += o.Reads
	s.NoAnchor += o.NoAnchor
	s.NoMarker += o.NoMarker
	s.Empty += o.Empty
	s.WithMisses += o.WithMisses
	s.Accepted += o.Accepted
	s.Misses += o.Misses
	for i, n := range o.MissDistance {
		s.MissDistance[i] += n
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("reads: %d, no-anchor: %d, no-marker: %d, empty: %d, with-misses: %d (misses %d, by distance %v), accepted: %d",
		s.Reads, s.NoAnchor, s.NoMarker, s.Empty, s.WithMisses, s.Misses, s.MissDistance, s.Accepted)
}
