// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package barcode

import (
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary(t *testing.T) {
	d, err := NewDictionary(map[string]int{"AAAA": 1, "CCCC": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 4, d.Width())

	sym, ok := d.Lookup("CCCC")
	assert.True(t, ok)
	assert.Equal(t, Symbol(2), sym)
	_, ok = d.Lookup("GGGG")
	assert.False(t, ok)

	nearest, dist := d.Nearest("ACCC")
	assert.Equal(t, "CCCC", nearest)
	assert.Equal(t, 1, dist)
	// Equidistant from both; the smaller barcode wins.
	nearest, dist = d.Nearest("AACC")
	assert.Equal(t, "AAAA", nearest)
	assert.Equal(t, 2, dist)
}

func TestDictionaryErrors(t *testing.T) {
	for _, entries := range []map[string]int{
		nil,
		{"AAAA": 1, "CCC": 2},
		{"AAAA": 0},
		{"AAAA": -3},
		{"": 1},
	} {
		_, err := NewDictionary(entries)
		assert.True(t, errors.Is(errors.Invalid, err), "%v: %v", entries, err)
	}
}

func TestReadDictionary(t *testing.T) {
	entries, err := ReadDictionary(strings.NewReader("barcode\tsymbol\nAAAA\t1\nCCCC\t2\nGGGG\t3\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"AAAA": 1, "CCCC": 2, "GGGG": 3}, entries)

	_, err = ReadDictionary(strings.NewReader("barcode\tsymbol\nAAAA\t1\nAAAA\t2\n"))
	assert.Error(t, err)
	_, err = ReadDictionary(strings.NewReader("barcode\tsymbol\nAAAA\tone\n"))
	assert.Error(t, err)
}
