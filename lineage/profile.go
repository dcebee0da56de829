// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/lineage/barcode"
	"github.com/grailbio/lineage/encoding/fastq"
	"github.com/grailbio/lineage/tape"
)

// Profile is a clone together with the extraction counters of its
// reads.
type Profile struct {
	Clone
	Path  string
	Stats barcode.Stats
}

// CloneName derives a clone name from a FASTQ path: the base name up to
// the first '.', then up to the first '_'. "/x/A12_S3_R1.fastq.gz" is
// clone "A12".
func CloneName(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, '_'); i >= 0 {
		name = name[:i]
	}
	return name
}

// ListClones returns the FASTQ files directly under dir, sorted by path.
// Other files are ignored.
func ListClones(ctx context.Context, dir string) ([]string, error) {
	var (
		paths  []string
		lister = file.List(ctx, dir, false)
	)
	for lister.Scan() {
		if fastq.CheckPath(lister.Path()) != nil {
			continue
		}
		paths = append(paths, lister.Path())
	}
	if err := lister.Err(); err != nil {
		return nil, errors.E(err, "list", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadClone extracts the valid tapes from one FASTQ file. Reads whose
// tape is empty or contains an unrecognised barcode are dropped and
// only counted in the returned stats.
func ReadClone(ctx context.Context, path string, x *barcode.Extractor, opts Opts) (p Profile, err error) {
	if err = fastq.CheckPath(path); err != nil {
		return p, errors.E(errors.Invalid, err)
	}
	p.Path = path
	p.Name = CloneName(path)

	var sampler *fastq.Sampler
	if rate := opts.sampleRate(); rate != 1.0 {
		seed := int64(farm.Hash64WithSeed([]byte(p.Name), uint64(opts.Seed)))
		if sampler, err = fastq.NewSampler(rate, seed); err != nil {
			return p, errors.E(errors.Invalid, err)
		}
	}

	in, err := file.Open(ctx, path)
	if err != nil {
		return p, errors.E(err, "open", path)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = errors.E(e, "close", path)
		}
	}()
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}

	var (
		sc   = fastq.NewSeqScanner(r, opts.Strict)
		dict = x.Dictionary()
		read fastq.Read
	)
	for sc.Scan(&read) {
		if sampler != nil && !sampler.Keep() {
			continue
		}
		e := x.Extract(read.Seq)
		p.Stats.Record(e, dict)
		if p.Stats.Reads%(1024*1024) == 0 {
			log.Printf("%s: %dMi reads", path, p.Stats.Reads/(1024*1024))
		}
		if !e.Valid() {
			if log.At(log.Debug) && len(e.Misses) > 0 {
				log.Debug.Printf("%s: dropping read with unknown barcodes %v", p.Name, e.Misses)
			}
			continue
		}
		p.Tapes = append(p.Tapes, tape.Tape(e.Tape))
	}
	if err = sc.Err(); err != nil {
		return p, errors.E(errors.Invalid, err, "read", path)
	}
	log.Printf("clone %s: %d tapes (%v)", p.Name, len(p.Tapes), p.Stats)
	return p, nil
}

// ReadClones reads every path with ReadClone, up to opts.Parallelism at
// a time, and returns the profiles sorted by clone name. Two paths that
// map to the same clone name are an error.
func ReadClones(ctx context.Context, paths []string, x *barcode.Extractor, opts Opts) ([]Profile, error) {
	profiles := make([]Profile, len(paths))
	err := forEach(len(paths), opts.parallelism(), func(i int) error {
		log.Printf("profiling clone %s", CloneName(paths[i]))
		var err error
		profiles[i], err = ReadClone(ctx, paths[i], x, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	for i := 1; i < len(profiles); i++ {
		if profiles[i].Name == profiles[i-1].Name {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("%s and %s both name clone %q",
				profiles[i-1].Path, profiles[i].Path, profiles[i].Name))
		}
	}
	return profiles, nil
}

// Reconstruct runs the whole pipeline over the given FASTQ files and
// returns the lineage matrix, labelled by clone name in sorted order,
// together with the clone profiles.
func Reconstruct(ctx context.Context, paths []string, x *barcode.Extractor, parity int, opts Opts) (*Matrix, []Profile, error) {
	if err := tape.CheckParity(parity); err != nil {
		return nil, nil, errors.E(errors.Invalid, err)
	}
	if len(paths) == 0 {
		return nil, nil, errors.E(errors.Invalid, "no FASTQ inputs")
	}
	profiles, err := ReadClones(ctx, paths, x, opts)
	if err != nil {
		return nil, nil, err
	}
	clones := make([]Clone, len(profiles))
	for i, p := range profiles {
		clones[i] = p.Clone
	}
	log.Printf("generating lineage matrix for %d clones", len(clones))
	pop, err := NewPopulation(clones, parity)
	if err != nil {
		return nil, nil, err
	}
	m, err := BuildLineageMatrix(pop, parity, opts)
	if err != nil {
		return nil, nil, err
	}
	return m, profiles, nil
}
