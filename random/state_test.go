package random_test

import (
	"sync"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelrand/accelrand/internal/workerspool"
	"github.com/accelrand/accelrand/random"
	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
)

// newSerialPool returns a pool with parallelism disabled: kernels run as a
// single inline block, a different batching than the default pool.
func newSerialPool() *workerspool.Pool {
	return workerspool.New().SetMaxParallelism(0)
}

func TestSeedReset(t *testing.T) {
	rs := random.New(42)
	first, err := rs.StandardNormal([]int{100}, dtypes.Float64)
	require.NoError(t, err)

	rs.Seed(42)
	assert.EqualValues(t, 0, rs.Rng().Counter())
	second, err := rs.StandardNormal([]int{100}, dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, tensors.Data[float64](first), tensors.Data[float64](second))
}

func TestCounterAdvance(t *testing.T) {
	rs := random.New(0)
	_, err := rs.StandardNormal([]int{10, 10}, dtypes.Float64)
	require.NoError(t, err)
	assert.EqualValues(t, 100, rs.Rng().Counter())

	// The advance depends only on the requested shape, not on how the
	// kernel was batched internally.
	serial := random.New(0).WithPool(newSerialPool())
	_, err = serial.StandardNormal([]int{10, 10}, dtypes.Float64)
	require.NoError(t, err)
	assert.EqualValues(t, 100, serial.Rng().Counter())
}

func TestBatchWidthIndependentValues(t *testing.T) {
	parallel := random.New(99)
	serial := random.New(99).WithPool(newSerialPool())
	a, err := parallel.StandardNormal([]int{10_000}, dtypes.Float64)
	require.NoError(t, err)
	b, err := serial.StandardNormal([]int{10_000}, dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, tensors.Data[float64](a), tensors.Data[float64](b))
}

func TestRngSnapshotRoundTrip(t *testing.T) {
	rs := random.New(1234)
	_, err := rs.StandardNormal([]int{17}, dtypes.Float64)
	require.NoError(t, err)

	snapshot := rs.Rng()
	blob, err := snapshot.MarshalBinary()
	require.NoError(t, err)

	var restored rng.State
	require.NoError(t, restored.UnmarshalBinary(blob))
	other := random.New(0)
	other.SetRng(restored)

	a, err := rs.StandardNormal([]int{50}, dtypes.Float64)
	require.NoError(t, err)
	b, err := other.StandardNormal([]int{50}, dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, tensors.Data[float64](a), tensors.Data[float64](b))
}

func TestDefaultState(t *testing.T) {
	previous := random.SetDefault(random.New(555))
	defer random.SetDefault(previous)

	require.Same(t, random.Default(), random.Default())
	out, err := random.Default().Uniform(random.Const(0), random.Const(1), []int{10}, dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Size())

	// Injecting a fresh instance restarts the sequence.
	random.SetDefault(random.New(555))
	again, err := random.Default().Uniform(random.Const(0), random.Const(1), []int{10}, dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, tensors.Data[float64](out), tensors.Data[float64](again))
}

func TestConcurrentCalls(t *testing.T) {
	// Concurrent calls against one State must serialize counter updates:
	// the total advance is exact and no element substream is reused.
	rs := random.New(77)
	const callers = 8
	const perCall = 1000
	var wg sync.WaitGroup
	results := make([]*tensors.Tensor, callers)
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := rs.StandardNormal([]int{perCall}, dtypes.Float64)
			assert.NoError(t, err)
			results[c] = out
		}()
	}
	wg.Wait()
	assert.EqualValues(t, callers*perCall, rs.Rng().Counter())

	seen := make(map[float64]bool, callers*perCall)
	for _, out := range results {
		for _, v := range tensors.Data[float64](out) {
			require.False(t, seen[v], "value %v sampled by two concurrent calls", v)
			seen[v] = true
		}
	}
}

func TestExhaustedStream(t *testing.T) {
	rs := random.New(1)
	gen := rs.Rng()
	gen.SetMaxAdvance(50)
	rs.SetRng(gen)

	_, err := rs.StandardNormal([]int{40}, dtypes.Float64)
	require.NoError(t, err)
	_, err = rs.StandardNormal([]int{40}, dtypes.Float64)
	require.ErrorIs(t, err, random.ErrExhaustedStream)
	assert.EqualValues(t, 40, rs.Rng().Counter())
}
