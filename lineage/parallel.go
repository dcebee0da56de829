// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lineage

import "github.com/grailbio/base/traverse"

// forEach calls fn(i) for i in [0, n), splitting the range into at most
// parallelism contiguous shards that run concurrently.
func forEach(n, parallelism int, fn func(i int) error) error {
	if parallelism > n {
		parallelism = n
	}
	if parallelism <= 0 {
		return nil
	}
	return traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * n) / parallelism
		endIdx := ((jobIdx + 1) * n) / parallelism
		for i := startIdx; i < endIdx; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	})
}
