// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"golang.org/x/exp/constraints"

	"github.com/accelrand/accelrand/internal/workerspool"
)

// Elementwise in-place arithmetic, the only math the samplers need: the
// post-hoc affine rescale of normal variates (x*scale + loc). Both run as
// data-parallel kernels on the device's worker pool.

// MulScalar multiplies every element by c, in place, and returns t.
func (t *Tensor) MulScalar(c float64) *Tensor {
	dispatchScalarOp(t, c, mulKernel[float32], mulKernel[float64], mulKernel[int32], mulKernel[int64])
	return t
}

// AddScalar adds c to every element, in place, and returns t.
func (t *Tensor) AddScalar(c float64) *Tensor {
	dispatchScalarOp(t, c, addKernel[float32], addKernel[float64], addKernel[int32], addKernel[int64])
	return t
}

func mulKernel[T constraints.Float | constraints.Integer](flat []T, c float64) {
	for ii := range flat {
		flat[ii] = T(float64(flat[ii]) * c)
	}
}

func addKernel[T constraints.Float | constraints.Integer](flat []T, c float64) {
	for ii := range flat {
		flat[ii] = T(float64(flat[ii]) + c)
	}
}

// dispatchScalarOp selects the dtype-specialized kernel once per call and
// fans it out over element blocks.
func dispatchScalarOp(t *Tensor, c float64,
	opF32 func([]float32, float64), opF64 func([]float64, float64),
	opI32 func([]int32, float64), opI64 func([]int64, float64)) {
	pool := workerspool.Default()
	switch t.DType() {
	case dtypes.Float32:
		flat := Data[float32](t)
		pool.ForBlocks(len(flat), func(start, end int) { opF32(flat[start:end], c) })
	case dtypes.Float64:
		flat := Data[float64](t)
		pool.ForBlocks(len(flat), func(start, end int) { opF64(flat[start:end], c) })
	case dtypes.Int32:
		flat := Data[int32](t)
		pool.ForBlocks(len(flat), func(start, end int) { opI32(flat[start:end], c) })
	case dtypes.Int64:
		flat := Data[int64](t)
		pool.ForBlocks(len(flat), func(start, end int) { opI64(flat[start:end], c) })
	default:
		exceptions.Panicf("tensors: dtype %s not supported by the device", t.DType())
	}
}
