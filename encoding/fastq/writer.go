// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"io"
	"strings"
)

var newline = []byte{'\n'}

// Writer writes FASTQ records. Errors are sticky: once a write fails,
// subsequent writes are no-ops that return the same error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new FASTQ writer
// that writes reads to the underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the read r in FASTQ format.
func (w *Writer) Write(r *Read) error {
	w.writeln(r.ID)
	w.writeln(r.Seq)
	w.writeln(r.Unk)
	w.writeln(r.Qual)
	return w.err
}

// WriteSeq writes a record for seq with the given name and a constant
// quality string. It is meant for synthetic data.
func (w *Writer) WriteSeq(name, seq string) error {
	return w.Write(&Read{
		ID:   "@" + name,
		Seq:  seq,
		Unk:  "+",
		Qual: strings.Repeat("E", len(seq)),
	})
}

func (w *Writer) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}
