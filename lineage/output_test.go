// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"bytes"
	"testing"

	"github.com/grailbio/lineage/tape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTSV(t *testing.T) {
	m := newMatrix([]string{"A", "B"})
	m.Row(0)[1] = 1.5
	m.Row(1)[0] = 1.5
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, m))
	assert.Equal(t, "clone\tA\tB\nA\t0\t1.5\nB\t1.5\t0\n", buf.String())
}

func TestCodeHistogram(t *testing.T) {
	hist, err := CodeHistogram([]tape.Tape{{1, 2}, {3, 4}, {2}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []CodeCount{
		{Code: 2, Length: 1, Count: 1, Frequency: 1.0 / 3},
		{Code: 4, Length: 2, Count: 2, Frequency: 2.0 / 3},
	}, hist)

	hist, err = CodeHistogram(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, len(hist))

	_, err = CodeHistogram([]tape.Tape{{}}, 2)
	assert.Error(t, err)
}

func TestWriteCodes(t *testing.T) {
	profiles := []Profile{
		{Clone: Clone{Name: "A", Tapes: []tape.Tape{{1, 2}, {1, 2}, {2}}}},
		{Clone: Clone{Name: "B"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCodes(&buf, profiles, 2))
	assert.Equal(t, "clone\tcode\tlength\ttape\tcount\tfrequency\n"+
		"A\t2\t1\t(2)\t1\t0.333333\n"+
		"A\t4\t2\t(1 2)\t2\t0.666667\n", buf.String())
}
