// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package barcode

import (
	"fmt"
	"io"
	"sort"

	"github.com/antzucaro/matchr"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// Symbol identifies one recorder event. Symbols read from a dictionary
// are always >= 1.
type Symbol int

// Dictionary maps barcode payload sequences to symbols. All payloads in
// a dictionary have the same length. A Dictionary is immutable once
// built and safe for concurrent lookups.
type Dictionary struct {
	symbols map[string]Symbol
	// sorted payloads, for deterministic nearest-barcode ties.
	keys  []string
	width int
}

// NewDictionary builds a dictionary from payload -> symbol entries.
func NewDictionary(entries map[string]int) (*Dictionary, error) {
	if len(entries) == 0 {
		return nil, errors.E(errors.Invalid, "barcode dictionary is empty")
	}
	d := &Dictionary{symbols: make(map[string]Symbol, len(entries)), width: -1}
	for payload, sym := range entries {
		if d.width < 0 {
			d.width = len(payload)
		}
		if len(payload) == 0 || len(payload) != d.width {
			return nil, errors.E(errors.Invalid, fmt.Sprintf(
				"barcode %q has length %d, others have length %d", payload, len(payload), d.width))
		}
		if sym < 1 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf(
				"barcode %q maps to non-positive symbol %d", payload, sym))
		}
		d.symbols[payload] = Symbol(sym)
		d.keys = append(d.keys, payload)
	}
	sort.Strings(d.keys)
	return d, nil
}

// Lookup returns the symbol for payload. ok is false when payload is not
// a known barcode; there is no sentinel symbol.
func (d *Dictionary) Lookup(payload string) (sym Symbol, ok bool) {
	sym, ok = d.symbols[payload]
	return
}

// Len returns the number of barcodes in the dictionary.
func (d *Dictionary) Len() int { return len(d.symbols) }

// Width returns the payload length shared by every barcode.
func (d *Dictionary) Width() int { return d.width }

// Nearest returns the known barcode with the smallest Levenshtein
// distance to payload, and that distance. Ties go to the
// lexicographically smallest barcode. Nearest is a QC aid: extraction
// never substitutes the nearest barcode for an unknown payload.
func (d *Dictionary) Nearest(payload string) (string, int) {
	best, bestDist := "", -1
	for _, k := range d.keys {
		dist := matchr.Levenshtein(payload, k)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = k, dist
		}
	}
	return best, bestDist
}

type dictionaryRow struct {
	Barcode string `tsv:"barcode"`
	Symbol  int    `tsv:"symbol"`
}

// ReadDictionary reads barcode entries from a TSV stream. The first row
// is a header; columns are barcode then symbol. A barcode listed twice
// is an error.
func ReadDictionary(r io.Reader) (map[string]int, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	entries := map[string]int{}
	for {
		var row dictionaryRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(errors.Invalid, err, "read barcode dictionary")
		}
		if _, ok := entries[row.Barcode]; ok {
			return nil, errors.E(errors.Invalid, "duplicate barcode", row.Barcode)
		}
		entries[row.Barcode] = row.Symbol
	}
	return entries, nil
}
