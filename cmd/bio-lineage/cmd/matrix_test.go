// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/lineage/encoding/fastq"
	"github.com/grailbio/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
spacer: ACGTACGTTTT
h1: TTTTTAGA
h2: CTCAAAAA
s1: CCC
s2: GGG
l: 3
parity: 2
marker_offset: 8
constant_length: 3
D:
  ACTG: 1
  GTCA: 2
  TGCA: 3
`

// Reads carrying tape (2 1) and tape (3) in the construct above.
const (
	read21 = "NNACGTACGTCCCAGAACTGCTCAAAGTCATTTGCGC"
	read3  = "NNACGTACGTCCCAGATGCACTCGCGC"
)

func writeFASTQ(t *testing.T, path string, reads ...string) {
	var buf bytes.Buffer
	w := fastq.NewWriter(&buf)
	for _, r := range reads {
		require.NoError(t, w.WriteSeq("r", r))
	}
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0600))
}

func newFlags(configPath string) pipelineFlags {
	var (
		parallelism = 2
		sampleRate  = 1.0
		seed        = int64(0)
		strict      = false
	)
	return pipelineFlags{
		config:      &configPath,
		parallelism: &parallelism,
		sampleRate:  &sampleRate,
		seed:        &seed,
		strict:      &strict,
	}
}

func setupDir(t *testing.T) (dir, configPath string, cleanup func()) {
	dir, cleanup = testutil.TempDir(t, "", "")
	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(configPath, []byte(testConfig), 0600))
	writeFASTQ(t, filepath.Join(dir, "A_S1.fastq"), read21, read21)
	writeFASTQ(t, filepath.Join(dir, "B_S2.fastq"), read21)
	writeFASTQ(t, filepath.Join(dir, "C_S3.fastq"), read3)
	return dir, configPath, cleanup
}

func TestMatrix(t *testing.T) {
	dir, configPath, cleanup := setupDir(t)
	defer cleanup()
	ctx := context.Background()
	var (
		output = filepath.Join(dir, "lineage.tsv")
		codes  = filepath.Join(dir, "codes.tsv.gz")
		weight = "column"
	)
	flags := matrixFlags{
		pipelineFlags: newFlags(configPath),
		output:        &output,
		codes:         &codes,
		weight:        &weight,
	}
	require.NoError(t, matrix(ctx, flags, dir))

	data, err := ioutil.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "clone\tA\tB\tC\nA\t0\t577\t0\nB\t577\t0\t0\nC\t0\t0\t0\n", string(data))

	data, err = ioutil.ReadFile(codes)
	require.NoError(t, err)
	gz, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	data, err = ioutil.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "clone\tcode\tlength\ttape\tcount\tfrequency\n"+
		"A\t5\t2\t(2 1)\t2\t1\n"+
		"B\t5\t2\t(2 1)\t1\t1\n"+
		"C\t1\t1\t(1)\t1\t1\n", string(data))

	weight = "bogus"
	assert.Error(t, matrix(ctx, flags, dir))
	weight = "position"
	require.NoError(t, matrix(ctx, flags, dir))

	empty, cleanupEmpty := testutil.TempDir(t, "", "")
	defer cleanupEmpty()
	assert.Error(t, matrix(ctx, flags, empty))
	noConfig := ""
	flags.config = &noConfig
	assert.Error(t, matrix(ctx, flags, dir))
}

func TestProfile(t *testing.T) {
	dir, configPath, cleanup := setupDir(t)
	defer cleanup()
	var out bytes.Buffer
	require.NoError(t, profile(context.Background(), newFlags(configPath), dir, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, 4, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "clone"))
	assert.Equal(t, []string{"A", "2", "0", "0", "0", "0", "2"}, strings.Fields(lines[1])[:7])
}

func TestDownsample(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	src := filepath.Join(dir, "in.fastq")
	dest := filepath.Join(dir, "out.fastq")
	writeFASTQ(t, src, read21, read3, read21)
	require.NoError(t, downsample(context.Background(), 1, 0, src, dest))
	data, err := ioutil.ReadFile(dest)
	require.NoError(t, err)
	seqs, err := fastq.ReadSequences(bytes.NewReader(data), true)
	require.NoError(t, err)
	assert.Equal(t, []string{read21, read3, read21}, seqs)

	require.NoError(t, downsample(context.Background(), 0, 0, src, dest))
	data, err = ioutil.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, 0, len(data))

	assert.Error(t, downsample(context.Background(), 2, 0, src, dest))
}
