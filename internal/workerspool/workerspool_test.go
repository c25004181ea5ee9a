package workerspool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForBlocksCoverage(t *testing.T) {
	for _, parallelism := range []int{0, 1, 4, -1} {
		pool := New().SetMaxParallelism(parallelism)
		const n = 10_000
		covered := make([]atomic.Int32, n)
		pool.ForBlocks(n, func(start, end int) {
			require.LessOrEqual(t, 0, start)
			require.LessOrEqual(t, start, end)
			require.LessOrEqual(t, end, n)
			for ii := start; ii < end; ii++ {
				covered[ii].Add(1)
			}
		})
		for ii := range covered {
			if covered[ii].Load() != 1 {
				t.Fatalf("parallelism=%d: element %d covered %d times, want exactly once",
					parallelism, ii, covered[ii].Load())
			}
		}
	}
}

func TestForBlocksEmpty(t *testing.T) {
	pool := New()
	called := false
	pool.ForBlocks(0, func(start, end int) { called = true })
	assert.False(t, called)
}

func TestWaitToStartInline(t *testing.T) {
	pool := New().SetMaxParallelism(0)
	var count atomic.Int32
	pool.WaitToStart(func() { count.Add(1) })
	assert.Equal(t, int32(1), count.Load())
}
