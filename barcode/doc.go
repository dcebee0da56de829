// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package barcode extracts DNA-recorder tapes from raw sequencing reads.
//
// A recorder read carries an anchor motif (the spacer stem), a short
// orientation marker, a constant region, and then a run of barcode
// inserts. Each insert is a fixed-length payload flanked by windows
// taken from the two header sequences h1 and h2:
//
//   ... h1[-l:] PAYLOAD h2[:l] ... h2[-l:] PAYLOAD h1[:l] ...
//
// Consecutive inserts alternate between the two flank pairs because the
// recorder writes each new event in the opposite orientation. The read
// is carved from the 3' end backwards relative to recording time, so
// the extracted symbols are reversed before being returned as a tape.
package barcode
