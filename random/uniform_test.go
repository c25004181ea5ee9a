package random_test

import (
	"math"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelrand/accelrand/random"
	"github.com/accelrand/accelrand/tensors"
)

func TestUniformRange(t *testing.T) {
	rs := random.New(42)
	const n = 20_000

	out, err := rs.Uniform(random.Const(-3), random.Const(7), []int{n}, dtypes.Float64)
	require.NoError(t, err)
	var sum float64
	for _, v := range tensors.Data[float64](out) {
		require.GreaterOrEqual(t, v, -3.0)
		require.Less(t, v, 7.0)
		sum += v
	}
	// Mean of U(-3, 7) is 2.
	assert.InDelta(t, 2.0, sum/n, 0.1)

	out32, err := rs.Uniform(random.Const(0), random.Const(1), []int{n}, dtypes.Float32)
	require.NoError(t, err)
	for _, v := range tensors.Data[float32](out32) {
		require.GreaterOrEqual(t, v, float32(0))
		require.Less(t, v, float32(1))
	}
}

func TestUniformArrayParams(t *testing.T) {
	rs := random.New(7)
	low := tensors.FromFlatDataAndDimensions([]float64{0, 100, -100}, 3)
	high := tensors.FromFlatDataAndDimensions([]float64{1, 200, -50}, 3)
	out, err := rs.Uniform(random.FromTensor(low), random.FromTensor(high), []int{1000, 3}, dtypes.Float64)
	require.NoError(t, err)
	flat := tensors.Data[float64](out)
	lows := []float64{0, 100, -100}
	highs := []float64{1, 200, -50}
	for i, v := range flat {
		col := i % 3
		require.GreaterOrEqual(t, v, lows[col])
		require.Less(t, v, highs[col])
	}
}

func TestUniformShapeMismatch(t *testing.T) {
	rs := random.New(0)
	low := tensors.FromFlatDataAndDimensions([]float64{0, 1, 2, 3}, 4)
	_, err := rs.Uniform(random.FromTensor(low), random.Const(10), []int{5, 3}, dtypes.Float64)
	require.ErrorIs(t, err, random.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "low")
	// No entropy consumed by the failed call.
	assert.EqualValues(t, 0, rs.Rng().Counter())
}

func TestUniformDtypeValidation(t *testing.T) {
	rs := random.New(0)
	_, err := rs.Uniform(random.Const(0), random.Const(1), []int{3}, dtypes.Int32)
	require.ErrorIs(t, err, random.ErrUnsupportedDtype)

	// InvalidDType selects the default float precision.
	out, err := rs.Uniform(random.Const(0), random.Const(1), []int{3}, dtypes.InvalidDType)
	require.NoError(t, err)
	assert.Equal(t, dtypes.Float64, out.DType())
}

func TestUniformScalar(t *testing.T) {
	rs := random.New(11)
	out, err := rs.Uniform(random.Const(0), random.Const(1), nil, dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rank())
	v := tensors.ToScalar[float64](out)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
	// Exactly one substream consumed.
	assert.EqualValues(t, 1, rs.Rng().Counter())
}

func TestUniformDeterminism(t *testing.T) {
	a, err := random.New(1234).Uniform(random.Const(0), random.Const(1), []int{1000}, dtypes.Float64)
	require.NoError(t, err)
	b, err := random.New(1234).Uniform(random.Const(0), random.Const(1), []int{1000}, dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, tensors.Data[float64](a), tensors.Data[float64](b))

	c, err := random.New(1235).Uniform(random.Const(0), random.Const(1), []int{1000}, dtypes.Float64)
	require.NoError(t, err)
	assert.NotEqual(t, tensors.Data[float64](a), tensors.Data[float64](c))
}

func TestUniformNonFinite(t *testing.T) {
	rs := random.New(0)
	_, err := rs.Uniform(random.Const(0), random.Const(math.Inf(1)), []int{3}, dtypes.Float64)
	require.ErrorIs(t, err, random.ErrInvalidParameter)
}
