// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package workerspool

import "sync"

var defaultPool = sync.OnceValue(New)

// Default returns the process-wide pool, lazily created with the default
// parallelism. Kernels that are not bound to an explicitly configured pool
// run here.
func Default() *Pool {
	return defaultPool()
}
