package tensors_test

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelrand/accelrand/tensors"
	"github.com/accelrand/accelrand/types/shapes"
)

func TestFromShape(t *testing.T) {
	tensor := tensors.FromShape(shapes.Make(dtypes.Float32, 2, 3))
	require.Equal(t, 6, tensor.Size())
	require.Equal(t, dtypes.Float32, tensor.DType())
	flat := tensors.Data[float32](tensor)
	require.Len(t, flat, 6)
	for _, v := range flat {
		assert.Zero(t, v)
	}
	require.Panics(t, func() { tensors.Data[float64](tensor) })

	scalar := tensors.FromShape(shapes.Scalar(dtypes.Int64))
	require.Equal(t, 0, scalar.Rank())
	require.EqualValues(t, 0, tensors.ToScalar[int64](scalar))
}

func TestFromFlatDataAndDimensions(t *testing.T) {
	tensor := tensors.FromFlatDataAndDimensions([]int32{1, 2, 3, 4, 5, 6}, 3, 2)
	require.Equal(t, "(Int32)[3 2]", tensor.Shape().String())
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, tensors.CopyFlatData[int32](tensor))
	require.Panics(t, func() { tensors.FromFlatDataAndDimensions([]int32{1, 2, 3}, 2, 2) })
}

func TestFinalize(t *testing.T) {
	tensor := tensors.FromShape(shapes.Make(dtypes.Float64, 128))
	require.False(t, tensor.IsFinalized())
	tensor.Finalize()
	require.True(t, tensor.IsFinalized())
	tensor.Finalize() // Idempotent.

	// Recycled buffers come back zeroed.
	again := tensors.FromShape(shapes.Make(dtypes.Float64, 128))
	for _, v := range tensors.Data[float64](again) {
		require.Zero(t, v)
	}
}

func TestScalarMath(t *testing.T) {
	tensor := tensors.FromFlatDataAndDimensions([]float64{1, 2, 3}, 3)
	tensor.MulScalar(2).AddScalar(-1)
	assert.Equal(t, []float64{1, 3, 5}, tensors.Data[float64](tensor))

	ints := tensors.FromFlatDataAndDimensions([]int64{10, 20}, 2)
	ints.MulScalar(3)
	assert.Equal(t, []int64{30, 60}, tensors.Data[int64](ints))
}

func TestConvertToFloat64(t *testing.T) {
	tensor := tensors.FromFlatDataAndDimensions([]float32{0.5, 1.5}, 2)
	assert.Equal(t, []float64{0.5, 1.5}, tensors.ConvertToFloat64(tensor))

	ints := tensors.FromFlatDataAndDimensions([]int32{3, -4}, 2)
	assert.Equal(t, []float64{3, -4}, tensors.ConvertToFloat64(ints))
}

func TestConvertToInt64(t *testing.T) {
	ints := tensors.FromFlatDataAndDimensions([]int32{3, -4}, 2)
	got, err := tensors.ConvertToInt64(ints)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, -4}, got)

	floats := tensors.FromFlatDataAndDimensions([]float64{3.5}, 1)
	_, err = tensors.ConvertToInt64(floats)
	require.Error(t, err)
}

func TestString(t *testing.T) {
	tensor := tensors.FromFlatDataAndDimensions([]int64{1, 2, 3}, 3)
	assert.Contains(t, tensor.String(), "[1 2 3]")
}
