// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"bufio"
	"errors"
	"io"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
)

// maxLine bounds the length of a single FASTQ line. Long-read
// platforms can emit reads well beyond bufio's 64KiB default.
const maxLine = 16 << 20

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}

var errEOF = errors.New("eof")

// Field enumerates FASTQ fields. It is used to specify fields to read in
// NewScanner.
type Field uint

const (
	// ID causes the Read.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Read.Seq field to be filled
	Seq
	// Unk causes the Read.Unk field to be filled
	Unk
	// Qual causes the Read.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// SeqScanner is implemented by the scanners in this package. Scan fills
// read with the next record; only fields the scanner knows about are
// written.
type SeqScanner interface {
	Scan(read *Read) bool
	Err() error
}

// Scanner reads 4-line FASTQ records. It requires ID lines to begin
// with "@" and line 3 to begin with "+", but does not validate the
// sequence or quality contents. Blank lines are allowed after the last
// record. Scanners are not threadsafe.
type Scanner struct {
	b      *bufio.Scanner
	err    error
	fields Field
}

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader. Fields is a bitset of the fields to read. Lineage
// profiling only needs Seq.
func NewScanner(r io.Reader, fields Field) *Scanner {
	return &Scanner{b: newLineScanner(r), fields: fields}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 64<<10), maxLine)
	return b
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (f *Scanner) Scan(read *Read) bool {
	if f.err != nil {
		return false
	}
	if !f.b.Scan() {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
		return false
	}
	id := f.b.Bytes()
	if len(id) == 0 {
		f.skipTrailingBlanks()
		return false
	}
	if id[0] != '@' {
		f.err = ErrInvalid
		return false
	}
	if f.fields&ID != 0 {
		read.ID = string(id)
	}
	if !f.next() {
		return false
	}
	if f.fields&Seq != 0 {
		read.Seq = f.b.Text()
	}
	if !f.next() {
		return false
	}
	unk := f.b.Bytes()
	if len(unk) == 0 || unk[0] != '+' {
		f.err = ErrInvalid
		return false
	}
	if f.fields&Unk != 0 {
		read.Unk = string(unk)
	}
	if !f.next() {
		return false
	}
	if f.fields&Qual != 0 {
		read.Qual = f.b.Text()
	}
	return true
}

// skipTrailingBlanks consumes the input after a blank line. Blank lines
// are accepted only at the end of the file.
func (f *Scanner) skipTrailingBlanks() {
	for f.b.Scan() {
		if len(f.b.Bytes()) > 0 {
			f.err = ErrInvalid
			return
		}
	}
	if f.err = f.b.Err(); f.err == nil {
		f.err = errEOF
	}
}

func (f *Scanner) next() bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = ErrShort
		}
	}
	return ok
}

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}

// SequenceScanner is a permissive FASTQ reader that only tracks a
// single line of lookahead: a line starting with '@' arms the scanner,
// and the line that follows it is returned as the read sequence. Every
// other line is skipped, so record structure is never validated.
//
// A quality line that happens to begin with '@' re-arms the scanner and
// the following header is then taken as a sequence. Such reads carry
// no recorder anchor and drop out during extraction, but the true
// sequence of the next record is lost. Scanner rejects such input
// instead.
type SequenceScanner struct {
	b     *bufio.Scanner
	err   error
	armed bool
}

// NewSequenceScanner returns a SequenceScanner reading from r.
func NewSequenceScanner(r io.Reader) *SequenceScanner {
	return &SequenceScanner{b: newLineScanner(r)}
}

// Scan stores the next sequence in read.Seq. Other fields are left
// untouched.
func (s *SequenceScanner) Scan(read *Read) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		line := s.b.Bytes()
		if s.armed {
			s.armed = false
			read.Seq = string(line)
			return true
		}
		if len(line) > 0 && line[0] == '@' {
			s.armed = true
		}
	}
	if s.err = s.b.Err(); s.err == nil {
		s.err = errEOF
	}
	return false
}

// Err returns the scanning error, if any. A trailing header with no
// sequence line is not an error.
func (s *SequenceScanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// NewSeqScanner returns a strict Scanner reading only sequences if
// strict is set, and a SequenceScanner otherwise.
func NewSeqScanner(r io.Reader, strict bool) SeqScanner {
	if strict {
		return NewScanner(r, Seq)
	}
	return NewSequenceScanner(r)
}

// ReadSequences returns every read sequence in r, in file order.
func ReadSequences(r io.Reader, strict bool) ([]string, error) {
	var (
		sc   = NewSeqScanner(r, strict)
		read Read
		seqs []string
	)
	for sc.Scan(&read) {
		seqs = append(seqs, read.Seq)
	}
	return seqs, sc.Err()
}
