// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import "runtime"

// Opts holds run-time knobs for the pipeline.
type Opts struct {
	// Parallelism caps the number of clones read, and the number of
	// lineage rows scored, concurrently. Zero means runtime.NumCPU().
	Parallelism int
	// Strict reads input as 4-line FASTQ records and fails the clone on
	// a malformed record. By default the line after any '@' line is
	// taken as a sequence and every other line is skipped.
	Strict bool
	// SampleRate is the fraction of reads kept per clone. Values in
	// (0, 1) draw a bootstrap replicate. Zero means 1, keeping every
	// read; values outside [0, 1] are an error.
	SampleRate float64
	// Seed seeds read sampling. Each clone hashes its name with Seed,
	// so replicates do not depend on input order.
	Seed int64
	// Weigher weights population columns. Nil means ColumnWeight.
	Weigher Weigher
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Parallelism: 0,
	Strict:      false,
	SampleRate:  1.0,
	Seed:        0,
	Weigher:     ColumnWeight,
}

func (o Opts) parallelism() int {
	if o.Parallelism > 0 {
		return o.Parallelism
	}
	return runtime.NumCPU()
}

func (o Opts) sampleRate() float64 {
	if o.SampleRate == 0 {
		return 1.0
	}
	return o.SampleRate
}

func (o Opts) weigher() Weigher {
	if o.Weigher == nil {
		return ColumnWeight
	}
	return o.Weigher
}
