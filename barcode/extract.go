// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package barcode

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Layout describes where the recorder sits inside a read.
type Layout struct {
	// Spacer is the anchor motif. Only its stem (Spacer minus the last
	// three bases) is searched for.
	Spacer string
	// H1 and H2 are the two header sequences flanking each insert. The
	// last L bases of one header and the first L bases of the other
	// form a (start, end) window pair.
	H1, H2 string
	// S1 and S2 are the orientation markers, MarkerLength bases each.
	// S1 selects the (H1[-L:], H2[:L]) pair for the first insert, S2
	// the (H2[-L:], H1[:L]) pair.
	S1, S2 string
	// L is the flank window length.
	L int
	// MarkerOffset is the distance from the start of the spacer stem
	// to the orientation marker.
	MarkerOffset int
	// ConstantLength is the distance from the marker to the start of
	// the insert scan.
	ConstantLength int
	// PayloadLength is the barcode length. Zero means the dictionary
	// width.
	PayloadLength int
}

// Defaults for the fixed offsets of the standard recorder construct.
const (
	DefaultMarkerOffset   = 17
	DefaultConstantLength = 6
	DefaultPayloadLength  = 4

	// MarkerLength is the length of the S1 and S2 orientation markers.
	MarkerLength = 3
)

// Status describes how far extraction got on a read.
type Status uint8

const (
	// NoAnchor means the spacer stem does not occur in the read.
	NoAnchor Status = iota
	// NoMarker means the anchor was found but neither orientation
	// marker follows it.
	NoMarker
	// Extracted means the insert scan ran. The tape may still be empty.
	Extracted
)

func (s Status) String() string {
	switch s {
	case NoAnchor:
		return "no-anchor"
	case NoMarker:
		return "no-marker"
	case Extracted:
		return "extracted"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Extraction is the result of scanning one read.
type Extraction struct {
	Status Status
	// Tape holds the recognised symbols in chronological order.
	Tape []Symbol
	// Misses holds payloads absent from the dictionary, in scan order.
	Misses []string
}

// Valid reports whether the extraction yields a usable tape: the scan
// ran, every payload was recognised, and at least one was found. Reads
// failing this check are discarded whole; a tape is never used with
// holes in it.
func (e Extraction) Valid() bool {
	return e.Status == Extracted && len(e.Misses) == 0 && len(e.Tape) > 0
}

type window struct {
	start, end string
}

// Extractor carves tapes out of reads. It holds no mutable state and may
// be shared by concurrent goroutines.
type Extractor struct {
	layout  Layout
	dict    *Dictionary
	stem    string
	windows [2]window
}

// NewExtractor checks the layout against the dictionary and returns an
// extractor.
func NewExtractor(layout Layout, dict *Dictionary) (*Extractor, error) {
	if dict == nil {
		return nil, errors.E(errors.Invalid, "nil barcode dictionary")
	}
	if layout.PayloadLength == 0 {
		layout.PayloadLength = dict.Width()
	}
	if err := layout.validate(); err != nil {
		return nil, err
	}
	if layout.PayloadLength != dict.Width() {
		return nil, errors.E(errors.Invalid, fmt.Sprintf(
			"payload length %d does not match barcode length %d", layout.PayloadLength, dict.Width()))
	}
	l := layout.L
	return &Extractor{
		layout: layout,
		dict:   dict,
		stem:   layout.Spacer[:len(layout.Spacer)-3],
		windows: [2]window{
			{start: layout.H1[len(layout.H1)-l:], end: layout.H2[:l]},
			{start: layout.H2[len(layout.H2)-l:], end: layout.H1[:l]},
		},
	}, nil
}

func (l Layout) validate() error {
	switch {
	case len(l.Spacer) <= 3:
		return errors.E(errors.Invalid, fmt.Sprintf("spacer %q must be longer than 3 bases", l.Spacer))
	case l.L < 1:
		return errors.E(errors.Invalid, fmt.Sprintf("flank length l=%d must be positive", l.L))
	case len(l.H1) < l.L || len(l.H2) < l.L:
		return errors.E(errors.Invalid, fmt.Sprintf("headers h1=%q h2=%q are shorter than l=%d", l.H1, l.H2, l.L))
	case len(l.S1) != MarkerLength || len(l.S2) != MarkerLength:
		return errors.E(errors.Invalid, fmt.Sprintf("markers s1=%q s2=%q must be %d bases long", l.S1, l.S2, MarkerLength))
	case l.MarkerOffset < 0 || l.ConstantLength < 0:
		return errors.E(errors.Invalid, "negative marker offset or constant length")
	case l.PayloadLength < 1:
		return errors.E(errors.Invalid, fmt.Sprintf("payload length %d must be positive", l.PayloadLength))
	}
	return nil
}

// Layout returns the layout in effect, with defaults resolved.
func (x *Extractor) Layout() Layout { return x.layout }

// Dictionary returns the extractor's barcode dictionary.
func (x *Extractor) Dictionary() *Dictionary { return x.dict }

// hasAt reports whether s occurs in read at offset ix.
func hasAt(read string, ix int, s string) bool {
	return ix >= 0 && ix+len(s) <= len(read) && read[ix:ix+len(s)] == s
}

// Extract scans read for a recorder tape.
//
// After the anchor and marker, the scan slides one base at a time
// until the current start window matches at ix and the current end
// window matches one payload further on. The payload between them is
// looked up, the window pair flips to the other orientation, and the
// scan resumes L bases later.
func (x *Extractor) Extract(read string) Extraction {
	ix := strings.Index(read, x.stem)
	if ix < 0 {
		return Extraction{Status: NoAnchor}
	}
	ix += x.layout.MarkerOffset
	var w int
	switch {
	case hasAt(read, ix, x.layout.S1):
		w = 0
	case hasAt(read, ix, x.layout.S2):
		w = 1
	default:
		return Extraction{Status: NoMarker}
	}
	ix += x.layout.ConstantLength

	var (
		l = x.layout.L
		p = x.layout.PayloadLength
		e = Extraction{Status: Extracted}
	)
	for ix < len(read) {
		win := x.windows[w]
		if !hasAt(read, ix, win.start) || !hasAt(read, ix+l+p, win.end) {
			ix++
			continue
		}
		payload := read[ix+l : ix+l+p]
		if sym, ok := x.dict.Lookup(payload); ok {
			e.Tape = append(e.Tape, sym)
		} else {
			e.Misses = append(e.Misses, payload)
		}
		w ^= 1
		ix += l
	}
	for i, j := 0, len(e.Tape)-1; i < j; i, j = i+1, j-1 {
		e.Tape[i], e.Tape[j] = e.Tape[j], e.Tape[i]
	}
	return e
}
