// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/lineage/barcode"
	"github.com/grailbio/lineage/config"
	"github.com/grailbio/lineage/encoding/fastq"
	"github.com/grailbio/lineage/lineage"
	"github.com/klauspost/compress/gzip"
)

type matrixFlags struct {
	pipelineFlags
	output *string
	codes  *string
	weight *string
}

// setup loads the config and lists the clone files under dir.
func setup(ctx context.Context, flags pipelineFlags, dir string) (*config.Config, *barcode.Extractor, []string, error) {
	if *flags.config == "" {
		return nil, nil, nil, errors.E(errors.Invalid, "-config is required")
	}
	cfg, err := config.Load(ctx, *flags.config)
	if err != nil {
		return nil, nil, nil, err
	}
	x, err := cfg.Extractor()
	if err != nil {
		return nil, nil, nil, err
	}
	paths, err := lineage.ListClones(ctx, dir)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, nil, errors.E(errors.NotExist, "no FASTQ files in", dir)
	}
	log.Printf("found %d clone files in %s", len(paths), dir)
	return cfg, x, paths, nil
}

func matrix(ctx context.Context, flags matrixFlags, dir string) error {
	weigher, err := lineage.ParseWeigher(*flags.weight)
	if err != nil {
		return err
	}
	cfg, x, paths, err := setup(ctx, flags.pipelineFlags, dir)
	if err != nil {
		return err
	}
	opts := flags.opts()
	opts.Weigher = weigher
	m, profiles, err := lineage.Reconstruct(ctx, paths, x, cfg.Parity, opts)
	if err != nil {
		return err
	}
	if err := writeFile(ctx, *flags.output, func(w io.Writer) error {
		return lineage.WriteTSV(w, m)
	}); err != nil {
		return err
	}
	log.Printf("wrote %dx%d lineage matrix to %s", m.Len(), m.Len(), *flags.output)
	if *flags.codes != "" {
		return writeFile(ctx, *flags.codes, func(w io.Writer) error {
			return lineage.WriteCodes(w, profiles, cfg.Parity)
		})
	}
	return nil
}

func profile(ctx context.Context, flags pipelineFlags, dir string, out io.Writer) error {
	_, x, paths, err := setup(ctx, flags, dir)
	if err != nil {
		return err
	}
	profiles, err := lineage.ReadClones(ctx, paths, x, flags.opts())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 8, 1, ' ', 0)
	fmt.Fprintln(w, "clone\treads\tno-anchor\tno-marker\tempty\twith-misses\taccepted\tpath")
	var total barcode.Stats
	for _, p := range profiles {
		s := p.Stats
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			p.Name, s.Reads, s.NoAnchor, s.NoMarker, s.Empty, s.WithMisses, s.Accepted, p.Path)
		total = total.Merge(s)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Printf("all clones: %v", total)
	return nil
}

func downsample(ctx context.Context, rate float64, seed int64, srcPath, destPath string) (err error) {
	in, err := file.Open(ctx, srcPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx) // nolint: errcheck
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return writeFile(ctx, destPath, func(w io.Writer) error {
		return fastq.Downsample(rate, seed, r, w)
	})
}

// writeFile creates path, gzip-compressing when it ends in ".gz", and
// passes the writer to fn.
func writeFile(ctx context.Context, path string, fn func(w io.Writer) error) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	w := out.Writer(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(w)
		if err = fn(gz); err != nil {
			return err
		}
		return gz.Close()
	}
	return fn(w)
}
