package random_test

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelrand/accelrand/random"
	"github.com/accelrand/accelrand/tensors"
)

func TestDirichletSimplex(t *testing.T) {
	rs := random.New(42)
	alpha := []float64{1, 2, 5}
	out, err := rs.Dirichlet(alpha, []int{10_000}, dtypes.Float64)
	require.NoError(t, err)
	require.Equal(t, []int{10_000, 3}, out.Shape().Dimensions)

	flat := tensors.Data[float64](out)
	colSums := [3]float64{}
	for row := 0; row < 10_000; row++ {
		var sum float64
		for col := 0; col < 3; col++ {
			v := flat[row*3+col]
			require.GreaterOrEqual(t, v, 0.0)
			sum += v
			colSums[col] += v
		}
		require.InDelta(t, 1.0, sum, 1e-6)
	}
	// Mean of component i is alpha_i / sum(alpha).
	for col, a := range alpha {
		assert.InDelta(t, a/8.0, colSums[col]/10_000, 0.01)
	}
}

func TestDirichletFloat32(t *testing.T) {
	rs := random.New(7)
	out, err := rs.Dirichlet([]float64{0.5, 0.5}, []int{5_000}, dtypes.Float32)
	require.NoError(t, err)
	flat := tensors.Data[float32](out)
	for row := 0; row < 5_000; row++ {
		sum := float64(flat[row*2]) + float64(flat[row*2+1])
		require.InDelta(t, 1.0, sum, 1e-5)
	}
}

func TestDirichletTinyAlphas(t *testing.T) {
	// alpha_i = 0.001 pushes whole rows of gamma draws below the
	// representable range; the shifted-exponent normalization must still
	// produce non-negative components summing to 1 in every row.
	rs := random.New(42)
	out, err := rs.Dirichlet([]float64{0.001, 0.001}, []int{5_000}, dtypes.Float64)
	require.NoError(t, err)
	flat := tensors.Data[float64](out)
	for row := 0; row < 5_000; row++ {
		sum := 0.0
		for col := 0; col < 2; col++ {
			v := flat[row*2+col]
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
			sum += v
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestDirichletScalarSize(t *testing.T) {
	rs := random.New(11)
	out, err := rs.Dirichlet([]float64{2, 2, 2, 2}, nil, dtypes.Float64)
	require.NoError(t, err)
	// A nil size still gets the alpha axis.
	require.Equal(t, []int{4}, out.Shape().Dimensions)
	// One substream per output element.
	assert.EqualValues(t, 4, rs.Rng().Counter())
}

func TestDirichletInvalidAlpha(t *testing.T) {
	rs := random.New(0)
	_, err := rs.Dirichlet(nil, []int{3}, dtypes.Float64)
	require.ErrorIs(t, err, random.ErrInvalidParameter)
	_, err = rs.Dirichlet([]float64{1, 0}, []int{3}, dtypes.Float64)
	require.ErrorIs(t, err, random.ErrInvalidParameter)
	_, err = rs.Dirichlet([]float64{1, -2}, []int{3}, dtypes.Float64)
	require.ErrorIs(t, err, random.ErrInvalidParameter)
	assert.EqualValues(t, 0, rs.Rng().Counter())
}
