// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package config loads the recorder construct description used to
// extract tapes from reads.
package config

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/lineage/barcode"
	"github.com/grailbio/lineage/tape"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
//
// Example:
//
//   spacer: GTTTAAACAGGTCCGAC
//   h1: TAGCAGTACGTCA
//   h2: ATGCATGTCAGTC
//   s1: TCA
//   s2: GTC
//   l: 6
//   parity: 2
//   D:
//     AACC: 1
//     GGTT: 2
type Config struct {
	Spacer string `yaml:"spacer"`
	H1     string `yaml:"h1"`
	H2     string `yaml:"h2"`
	S1     string `yaml:"s1"`
	S2     string `yaml:"s2"`
	L      int    `yaml:"l"`
	// D maps barcode payloads to symbols.
	D map[string]int `yaml:"D"`
	// Dictionary optionally names a TSV file (columns barcode, symbol)
	// whose entries are merged into D. Relative paths are resolved
	// against the config file's directory.
	Dictionary string `yaml:"dictionary"`
	Parity     int    `yaml:"parity"`

	// Offsets are pointers to distinguish "not set" from an explicit 0.
	MarkerOffset   *int `yaml:"marker_offset"`
	ConstantLength *int `yaml:"constant_length"`
	PayloadLength  int  `yaml:"payload_length"`
}

// Parse decodes a YAML config. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.E(errors.Invalid, err, "parse config")
	}
	return &c, nil
}

// Load reads, resolves and validates the config at path.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.E(err, path)
	}
	if c.Dictionary != "" {
		dictPath := c.Dictionary
		if !filepath.IsAbs(dictPath) && !strings.Contains(dictPath, "://") {
			dictPath = filepath.Join(filepath.Dir(path), dictPath)
		}
		in, err := file.Open(ctx, dictPath)
		if err != nil {
			return nil, errors.E(err, "open", dictPath)
		}
		entries, err := barcode.ReadDictionary(in.Reader(ctx))
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
		if err != nil {
			return nil, errors.E(err, dictPath)
		}
		if err := c.merge(entries); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, errors.E(err, path)
	}
	return c, nil
}

func readFile(ctx context.Context, path string) (data []byte, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	return ioutil.ReadAll(in.Reader(ctx))
}

func (c *Config) merge(entries map[string]int) error {
	if c.D == nil {
		c.D = map[string]int{}
	}
	for k, v := range entries {
		if old, ok := c.D[k]; ok && old != v {
			return errors.E(errors.Invalid, fmt.Sprintf(
				"barcode %s maps to %d in the config and %d in %s", k, old, v, c.Dictionary))
		}
		c.D[k] = v
	}
	return nil
}

// Layout returns the extraction layout with default offsets filled in.
func (c *Config) Layout() barcode.Layout {
	layout := barcode.Layout{
		Spacer:         c.Spacer,
		H1:             c.H1,
		H2:             c.H2,
		S1:             c.S1,
		S2:             c.S2,
		L:              c.L,
		MarkerOffset:   barcode.DefaultMarkerOffset,
		ConstantLength: barcode.DefaultConstantLength,
		PayloadLength:  c.PayloadLength,
	}
	if c.MarkerOffset != nil {
		layout.MarkerOffset = *c.MarkerOffset
	}
	if c.ConstantLength != nil {
		layout.ConstantLength = *c.ConstantLength
	}
	if layout.PayloadLength == 0 {
		layout.PayloadLength = barcode.DefaultPayloadLength
	}
	return layout
}

// Extractor builds the barcode dictionary and extractor described by c.
func (c *Config) Extractor() (*barcode.Extractor, error) {
	dict, err := barcode.NewDictionary(c.D)
	if err != nil {
		return nil, err
	}
	return barcode.NewExtractor(c.Layout(), dict)
}

// Validate checks c for errors that would otherwise surface as
// malformed matrices later on.
func (c *Config) Validate() error {
	if err := tape.CheckParity(c.Parity); err != nil {
		return errors.E(errors.Invalid, err)
	}
	_, err := c.Extractor()
	return err
}
