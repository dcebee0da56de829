// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/grailbio/lineage/encoding/fastq"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func synthetic(t *testing.T, n int) string {
	var buf bytes.Buffer
	w := fastq.NewWriter(&buf)
	for i := 0; i < n; i++ {
		assert.NoError(t, w.WriteSeq(fmt.Sprintf("r%d", i), "ACGTACGT"))
	}
	return buf.String()
}

func TestDownsample(t *testing.T) {
	in := synthetic(t, 1000)
	tests := []struct {
		rate     float64
		min, max int
	}{
		{1.0, 1000, 1000},
		{0.0, 0, 0},
		{0.5, 400, 600},
		{0.1, 50, 150},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.rate), func(t *testing.T) {
			var out bytes.Buffer
			assert.NoError(t, fastq.Downsample(test.rate, 1, strings.NewReader(in), &out))
			n := strings.Count(out.String(), "\n") / 4
			expect.GE(t, n, test.min)
			expect.LE(t, n, test.max)
		})
	}
}

func TestDownsampleDeterministic(t *testing.T) {
	in := synthetic(t, 200)
	var a, b, c bytes.Buffer
	assert.NoError(t, fastq.Downsample(0.3, 7, strings.NewReader(in), &a))
	assert.NoError(t, fastq.Downsample(0.3, 7, strings.NewReader(in), &b))
	assert.NoError(t, fastq.Downsample(0.3, 8, strings.NewReader(in), &c))
	expect.EQ(t, a.String(), b.String())
	expect.True(t, a.String() != c.String())
}

func TestDownsampleErrors(t *testing.T) {
	var out bytes.Buffer
	expect.True(t, fastq.Downsample(1.2, 0, strings.NewReader(""), &out) != nil)
	err := fastq.Downsample(1.0, 0, strings.NewReader("@r0\nACGT\n"), &out)
	expect.EQ(t, err.Error(), "error reading input: short FASTQ file")
}
