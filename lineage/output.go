// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import (
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/lineage/tape"
)

// WriteTSV writes m as a TSV table with a header row and a leading
// name column:
//
//   clone  A    B
//   A      0    1.5
//   B      1.5  0
func WriteTSV(w io.Writer, m *Matrix) error {
	out := tsv.NewWriter(w)
	out.WriteString("clone")
	for _, name := range m.Names {
		out.WriteString(name)
	}
	if err := out.EndLine(); err != nil {
		return err
	}
	for i, name := range m.Names {
		out.WriteString(name)
		for _, v := range m.Row(i) {
			out.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WriteCodes writes the code histogram of every profile as TSV with
// columns clone, code, length, tape, count, frequency.
func WriteCodes(w io.Writer, profiles []Profile, parity int) error {
	out := tsv.NewWriter(w)
	for _, col := range []string{"clone", "code", "length", "tape", "count", "frequency"} {
		out.WriteString(col)
	}
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, p := range profiles {
		hist, err := CodeHistogram(p.Tapes, parity)
		if err != nil {
			return err
		}
		for _, c := range hist {
			out.WriteString(p.Name)
			out.WriteString(strconv.FormatUint(uint64(c.Code), 10))
			out.WriteString(strconv.Itoa(c.Length))
			out.WriteString(tape.Decode(c.Code, parity).String())
			out.WriteString(strconv.Itoa(c.Count))
			out.WriteString(strconv.FormatFloat(c.Frequency, 'g', 6, 64))
			if err := out.EndLine(); err != nil {
				return err
			}
		}
	}
	return out.Flush()
}
