// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"io"
	"math/rand"

	"github.com/pkg/errors"
)

// Sampler makes independent keep/drop decisions with a fixed
// probability. The sequence of decisions is fully determined by the
// seed, so two runs with the same seed over the same input select the
// same reads.
type Sampler struct {
	rate   float64
	random *rand.Rand
}

// NewSampler returns a sampler that keeps a fraction rate of reads.
func NewSampler(rate float64, seed int64) (*Sampler, error) {
	if rate < 0.0 || rate > 1.0 {
		return nil, errors.New("rate must be between 0 and 1 (inclusive)")
	}
	return &Sampler{rate: rate, random: rand.New(rand.NewSource(seed))}, nil
}

// Keep reports whether the next read should be retained.
func (s *Sampler) Keep() bool {
	if s.rate >= 1.0 {
		return true
	}
	return s.random.Float64() < s.rate
}

// Downsample writes reads from in to out, keeping each one
// independently with probability rate. Repeated calls with distinct
// seeds produce bootstrap replicates of a clone.
func Downsample(rate float64, seed int64, in io.Reader, out io.Writer) error {
	sampler, err := NewSampler(rate, seed)
	if err != nil {
		return err
	}
	var (
		sc = NewScanner(in, All)
		w  = NewWriter(out)
		r  Read
	)
	for sc.Scan(&r) {
		if !sampler.Keep() {
			continue
		}
		if err := w.Write(&r); err != nil {
			return errors.Wrap(err, "error writing output")
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "error reading input")
	}
	return nil
}
