// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package lineage approximates clonal lineage from DNA-recorder tapes.

Each clone (one FASTQ file) contributes a set of tapes. The pipeline is

  ReadClones          reads -> tapes, per clone, in parallel
  BuildMatrix         tapes -> position x transition probability matrix
  NewPopulation       flatten and zero-pad every clone's matrix, one row each
  BuildLineageMatrix  pairwise scores over features exclusive to each pair

A population column is a (tape position, transition) feature. Two clones
score on a column only when they are the only clones in which that
feature occurs at all. The score adds up the agreement 1-|p_i-p_j| of
those columns, weighted so that deeper features count for more. The
resulting square matrix has a zero diagonal and is meant to be rendered
as a heatmap by an external tool.

Clone order is carried explicitly: every Population and Matrix holds the
clone names that label its rows.
*/
package lineage
