// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrFormat is returned for input paths that do not name a FASTQ file.
var ErrFormat = errors.New("not a FASTQ file")

var (
	fastqExts = []string{".fastq", ".fq"}
	// Suffixes understood by github.com/grailbio/base/compress.
	compressExts = []string{".gz", ".bz2", ".zst"}
)

// TrimExt strips a compression suffix and then a FASTQ extension from
// path. ok is false when path does not carry a FASTQ extension.
func TrimExt(path string) (trimmed string, ok bool) {
	base := path
	for _, ext := range compressExts {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	for _, ext := range fastqExts {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext), true
		}
	}
	return path, false
}

// CheckPath reports ErrFormat unless path ends in .fastq or .fq,
// optionally followed by a compression suffix.
func CheckPath(path string) error {
	if _, ok := TrimExt(filepath.Base(path)); !ok {
		return errors.Wrapf(ErrFormat, "%s", path)
	}
	return nil
}
