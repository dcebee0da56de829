// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/lineage/lineage"
	"v.io/x/lib/cmdline"
)

// pipelineFlags are shared by the commands that read clone directories.
type pipelineFlags struct {
	config      *string
	parallelism *int
	sampleRate  *float64
	seed        *int64
	strict      *bool
}

func addPipelineFlags(cmd *cmdline.Command) pipelineFlags {
	return pipelineFlags{
		config:      cmd.Flags.String("config", "", "YAML file describing the recorder construct and barcode dictionary. Required."),
		parallelism: cmd.Flags.Int("parallelism", 0, "Maximum number of clones processed concurrently; 0 = runtime.NumCPU()"),
		sampleRate:  cmd.Flags.Float64("sample-rate", lineage.DefaultOpts.SampleRate, "Fraction of reads kept per clone, in [0, 1]; 0 keeps every read"),
		seed:        cmd.Flags.Int64("seed", lineage.DefaultOpts.Seed, "Seed for read sampling"),
		strict:      cmd.Flags.Bool("strict", lineage.DefaultOpts.Strict, `Parse input as 4-line FASTQ records and fail on malformed ones.
By default the line after any '@' line is taken as a read sequence`),
	}
}

func (f pipelineFlags) opts() lineage.Opts {
	opts := lineage.DefaultOpts
	opts.Parallelism = *f.parallelism
	opts.SampleRate = *f.sampleRate
	opts.Seed = *f.seed
	opts.Strict = *f.strict
	return opts
}

func newCmdMatrix() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "matrix",
		Short: "Compute the clone x clone lineage matrix",
		Long: `Matrix reads one FASTQ file per clone from a directory, extracts the
recorder tapes of every read, and writes the pairwise lineage scores as TSV.
The clone name is the file name up to the first '.' or '_'.`,
		ArgsName: "dir",
	}
	flags := matrixFlags{
		pipelineFlags: addPipelineFlags(cmd),
		output:        cmd.Flags.String("output", "lineage.tsv", "Output path of the lineage matrix TSV"),
		codes:         cmd.Flags.String("codes", "", "If set, write the per-clone tape code histogram to this path"),
		weight:        cmd.Flags.String("weight", "column", "Column weighting; 'column' or 'position'"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("matrix takes one directory argument, but got %v", argv)
		}
		return matrix(context.Background(), flags, argv[0])
	})
	return cmd
}

func newCmdProfile() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "profile",
		Short:    "Show per-clone tape extraction stats",
		ArgsName: "dir",
	}
	flags := addPipelineFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("profile takes one directory argument, but got %v", argv)
		}
		return profile(context.Background(), flags, argv[0], env.Stdout)
	})
	return cmd
}

func newCmdDownsample() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "downsample",
		Short:    "Randomly sample reads of a FASTQ file",
		ArgsName: "srcpath destpath",
	}
	rate := cmd.Flags.Float64("rate", 0.1, "Fraction of reads to keep, in [0, 1]")
	seed := cmd.Flags.Int64("seed", 0, "Sampling seed")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("downsample takes srcpath destpath, but found %v", argv)
		}
		return downsample(context.Background(), *rate, *seed, argv[0], argv[1])
	})
	return cmd
}

// Run is the entry point of bio-lineage.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-lineage",
			Short:    "Clonal lineage reconstruction from DNA-recorder reads",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdMatrix(),
				newCmdProfile(),
				newCmdDownsample(),
			},
		})
}
